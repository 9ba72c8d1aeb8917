package complete

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "complete.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLuaProviderCandidates(t *testing.T) {
	path := writeScript(t, `
function complete(line)
	return { line .. "a", line .. "b" }
end
`)

	p, err := NewLuaProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	got := p.Provide("pre")
	want := []string{"prea", "preb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Provide() = %v, want %v", got, want)
	}
}

func TestLuaProviderEmptyTable(t *testing.T) {
	path := writeScript(t, `
function complete(line)
	return {}
end
`)

	p, err := NewLuaProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if got := p.Provide("x"); len(got) != 0 {
		t.Errorf("Provide() = %v, want no candidates", got)
	}
}

func TestLuaProviderNonTableResult(t *testing.T) {
	path := writeScript(t, `
function complete(line)
	return "not a table"
end
`)

	p, err := NewLuaProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if got := p.Provide("x"); got != nil {
		t.Errorf("Provide() = %v, want nil on non-table result", got)
	}
}

func TestLuaProviderScriptError(t *testing.T) {
	path := writeScript(t, `
function complete(line)
	error("boom")
end
`)

	p, err := NewLuaProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	if got := p.Provide("x"); got != nil {
		t.Errorf("Provide() = %v, want nil on script error", got)
	}
}

func TestLuaProviderMissingComplete(t *testing.T) {
	path := writeScript(t, `local x = 1`)

	if _, err := NewLuaProvider(path); err == nil {
		t.Error("expected error when complete() is not defined")
	}
}

func TestLuaProviderMissingFile(t *testing.T) {
	if _, err := NewLuaProvider(filepath.Join(t.TempDir(), "nope.lua")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestLuaProviderFiltersNonStrings(t *testing.T) {
	path := writeScript(t, `
function complete(line)
	return { "keep", 42, "also" }
end
`)

	p, err := NewLuaProvider(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	got := p.Provide("")
	want := []string{"keep", "also"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Provide() = %v, want %v", got, want)
	}
}
