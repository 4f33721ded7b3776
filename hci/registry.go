package hci

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// CommandDef binds an opcode to its symbolic name, its command
// parameter schema, and its return parameter schema.
type CommandDef struct {
	Name    string
	Opcode  Opcode
	Params  []Field
	Returns []Field
}

// QualifiedName returns the group-qualified command name, e.g.
// "CONTROLLER.RESET".
func (d *CommandDef) QualifiedName() string {
	return fmt.Sprintf("%s.%s", GroupName(d.Opcode.OGF()), d.Name)
}

// Registry resolves opcodes and event codes to their declared
// schemas. The zero value is unusable; NewRegistry seeds the standard
// Bluetooth SIG tables, the vendor-specific tables, and the event
// schemas. Additional vendor commands may be registered at runtime.
// Callers hold and pass the registry explicitly; there is no package
// level instance.
type Registry struct {
	mu        sync.RWMutex
	cmds      map[Opcode]*CommandDef
	byName    map[string]*CommandDef
	events    map[EventCode][]Field
	subevents map[SubeventCode][]Field
}

// NewRegistry returns a registry seeded with every built-in command
// and event schema.
func NewRegistry() *Registry {
	r := &Registry{
		cmds:      make(map[Opcode]*CommandDef),
		byName:    make(map[string]*CommandDef),
		events:    make(map[EventCode][]Field),
		subevents: make(map[SubeventCode][]Field),
	}
	for _, defs := range [][]CommandDef{standardCommands, vendorCommands} {
		for i := range defs {
			if err := r.Register(defs[i]); err != nil {
				panic(err)
			}
		}
	}
	for code, schema := range eventSchemas {
		r.events[code] = schema
	}
	for code, schema := range subeventSchemas {
		r.subevents[code] = schema
	}
	return r
}

// Register adds or replaces a command definition. Vendor-specific
// commands registered here share the lookup contract with the
// built-in tables.
func (r *Registry) Register(def CommandDef) error {
	if def.Name == "" {
		return errors.New("hci: command definition needs a name")
	}
	d := def
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds[d.Opcode] = &d
	r.byName[d.QualifiedName()] = &d
	return nil
}

// RegisterEvent adds or replaces the schema of an async event.
func (r *Registry) RegisterEvent(code EventCode, schema []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[code] = schema
}

// RegisterSubevent adds or replaces the schema of an LE Meta subevent.
func (r *Registry) RegisterSubevent(code SubeventCode, schema []Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subevents[code] = schema
}

// Lookup resolves an opcode to its definition.
func (r *Registry) Lookup(op Opcode) (*CommandDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.cmds[op]; ok {
		return d, nil
	}
	return nil, &UnknownOpcodeError{Opcode: op}
}

// LookupName resolves a group-qualified command name, e.g.
// "CONTROLLER.RESET".
func (r *Registry) LookupName(name string) (*CommandDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if d, ok := r.byName[name]; ok {
		return d, nil
	}
	return nil, &UnknownOpcodeError{Name: name}
}

// EventSchema resolves the schema of a self-describing async event.
func (r *Registry) EventSchema(code EventCode) ([]Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.events[code]; ok {
		return s, nil
	}
	return nil, &UnknownEventError{Code: code}
}

// SubeventSchema resolves the schema of an LE Meta subevent.
func (r *Registry) SubeventSchema(code SubeventCode) ([]Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.subevents[code]; ok {
		return s, nil
	}
	return nil, &UnknownEventError{Code: EvtLEMeta, Subcode: code}
}
