package complete

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaProvider sources candidates from a user script. The script defines a
// global function complete(line) returning a table of strings; each
// Provide call runs it in the provider's interpreter state.
type LuaProvider struct {
	state *lua.LState
}

// NewLuaProvider loads the script at path into a fresh interpreter with a
// minimal library set and verifies it defines complete().
func NewLuaProvider(path string) (*LuaProvider, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		state.Push(state.NewFunction(open.fn))
		state.Push(lua.LString(open.name))
		state.Call(1, 0)
	}

	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading completion script %s: %w", path, err)
	}

	fn := state.GetGlobal("complete")
	if _, ok := fn.(*lua.LFunction); !ok {
		state.Close()
		return nil, fmt.Errorf("completion script %s does not define complete()", path)
	}

	return &LuaProvider{state: state}, nil
}

// Provide runs complete(current) and collects the string entries of the
// returned table. Script errors and non-table results yield no
// candidates.
func (p *LuaProvider) Provide(current string) []string {
	fn := p.state.GetGlobal("complete")
	err := p.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(current))
	if err != nil {
		return nil
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}

	var candidates []string
	table.ForEach(func(_, value lua.LValue) {
		if s, ok := value.(lua.LString); ok {
			candidates = append(candidates, string(s))
		}
	})
	return candidates
}

// Close releases the interpreter state.
func (p *LuaProvider) Close() {
	p.state.Close()
}
