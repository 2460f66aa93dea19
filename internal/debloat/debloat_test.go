package debloat

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if len(c.All()) == 0 {
		t.Fatal("builtin catalog is empty")
	}
	for _, p := range c.All() {
		if p.Package == "" || p.Brand == "" {
			t.Errorf("incomplete entry %+v", p)
		}
	}
	brands := c.Brands()
	for i := 1; i < len(brands); i++ {
		if brands[i-1] > brands[i] {
			t.Errorf("brands not sorted: %v", brands)
		}
	}
}

const testCatalog = `
packages:
  - {name: Ads, package: com.miui.ads, desc: ad service, brand: Xiaomi}
  - {name: Browser, package: com.android.browser, desc: stock browser, brand: Xiaomi}
  - {name: Tips, package: com.huawei.tips, desc: hints, brand: Huawei}
`

func TestCatalogQueries(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ByBrand("xiaomi"); len(got) != 2 {
		t.Errorf("ByBrand(xiaomi) = %d", len(got))
	}
	if got := c.ByBrand("Redmi"); len(got) != 2 {
		t.Errorf("ByBrand(Redmi) = %d, want alias match", len(got))
	}
	if got := c.ByBrand("samsung"); len(got) != 0 {
		t.Errorf("ByBrand(samsung) = %d", len(got))
	}
	if got := c.Search("BROWSER"); len(got) != 1 || got[0].Package != "com.android.browser" {
		t.Errorf("Search(BROWSER) = %+v", got)
	}
	if got := c.Search("huawei"); len(got) != 1 {
		t.Errorf("Search(huawei) = %+v", got)
	}
	if got := c.Brands(); len(got) != 2 || got[0] != "Huawei" {
		t.Errorf("Brands = %v", got)
	}
}

type fakePM struct {
	installed map[string]bool
	checkErr  map[string]error
	removeErr map[string]error
	removed   []string
}

func (f *fakePM) PackageInstalled(_ context.Context, _, pkg string) (bool, error) {
	if err := f.checkErr[pkg]; err != nil {
		return false, err
	}
	return f.installed[pkg], nil
}

func (f *fakePM) UninstallForUser(_ context.Context, _, pkg string) error {
	if err := f.removeErr[pkg]; err != nil {
		return err
	}
	f.removed = append(f.removed, pkg)
	return nil
}

func TestRunnerContinuesPastFailures(t *testing.T) {
	pm := &fakePM{
		installed: map[string]bool{"a": true, "c": true, "d": true},
		checkErr:  map[string]error{"b": errors.New("device offline")},
		removeErr: map[string]error{"c": errors.New("Failure [DELETE_FAILED_INTERNAL_ERROR]")},
	}
	var seen []Status
	r := &Runner{PM: pm, Log: zerolog.Nop(), OnOutcome: func(o Outcome) { seen = append(seen, o.Status) }}

	pkgs := []Package{{Package: "a"}, {Package: "b"}, {Package: "c"}, {Package: "d"}, {Package: "e"}}
	res := r.Run(context.Background(), "serial1", pkgs)

	want := []Status{Removed, Skipped, Skipped, Removed, NotInstalled}
	if len(res.Outcomes) != len(want) {
		t.Fatalf("got %d outcomes", len(res.Outcomes))
	}
	for i, o := range res.Outcomes {
		if o.Status != want[i] {
			t.Errorf("outcome %d (%s) = %s, want %s", i, o.Package.Package, o.Status, want[i])
		}
	}
	if res.Removed != 2 || res.Skipped != 2 || res.NotInstalled != 1 {
		t.Errorf("unexpected counts %+v", res)
	}
	if res.Outcomes[1].Error != "device offline" {
		t.Errorf("skip reason = %q", res.Outcomes[1].Error)
	}
	if len(seen) != 5 {
		t.Errorf("OnOutcome called %d times", len(seen))
	}
	if len(pm.removed) != 2 || pm.removed[0] != "a" || pm.removed[1] != "d" {
		t.Errorf("removed = %v", pm.removed)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{PM: &fakePM{}, Log: zerolog.Nop()}
	res := r.Run(ctx, "serial1", []Package{{Package: "a"}})
	if len(res.Outcomes) != 0 {
		t.Errorf("expected no outcomes after cancel, got %+v", res.Outcomes)
	}
}
