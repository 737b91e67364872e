// Package uniform holds typed per-draw parameters handed to a render program,
// and the declared slot set a program validates them against.
package uniform

import (
	"errors"
	"fmt"
	"sort"

	"raymarch-renderer/internal/mathutil"
)

// Kind is the type of a uniform slot.
type Kind int

const (
	Float Kind = iota
	Int
	Vector
	Color
	Matrix
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Vector:
		return "vector"
	case Color:
		return "color"
	case Matrix:
		return "matrix"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrMissing  = errors.New("uniform: slot not set")
	ErrKind     = errors.New("uniform: kind mismatch")
	ErrUnknown  = errors.New("uniform: slot not declared")
	ErrDeclared = errors.New("uniform: slot declared twice")
)

type value struct {
	kind Kind
	f    float64
	i    int
	v    mathutil.Vec4
	m    mathutil.Mat4
}

// Block is one draw's worth of uniform values. Not safe for concurrent writes.
type Block struct {
	values map[string]value
}

func NewBlock() *Block {
	return &Block{values: make(map[string]value)}
}

func (b *Block) SetFloat(name string, f float64)        { b.values[name] = value{kind: Float, f: f} }
func (b *Block) SetInt(name string, i int)              { b.values[name] = value{kind: Int, i: i} }
func (b *Block) SetVector(name string, v mathutil.Vec4) { b.values[name] = value{kind: Vector, v: v} }
func (b *Block) SetColor(name string, c mathutil.Vec4)  { b.values[name] = value{kind: Color, v: c} }
func (b *Block) SetMatrix(name string, m mathutil.Mat4) { b.values[name] = value{kind: Matrix, m: m} }

// Len returns the number of slots set.
func (b *Block) Len() int {
	return len(b.values)
}

// Names returns the set slot names in sorted order.
func (b *Block) Names() []string {
	names := make([]string, 0, len(b.values))
	for n := range b.values {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (b *Block) get(name string, k Kind) (value, error) {
	v, ok := b.values[name]
	if !ok {
		return value{}, fmt.Errorf("%w: %s", ErrMissing, name)
	}
	if v.kind != k {
		return value{}, fmt.Errorf("%w: %s is %s, want %s", ErrKind, name, v.kind, k)
	}
	return v, nil
}

func (b *Block) Float(name string) (float64, error) {
	v, err := b.get(name, Float)
	return v.f, err
}

func (b *Block) Int(name string) (int, error) {
	v, err := b.get(name, Int)
	return v.i, err
}

func (b *Block) Vector(name string) (mathutil.Vec4, error) {
	v, err := b.get(name, Vector)
	return v.v, err
}

func (b *Block) Color(name string) (mathutil.Vec4, error) {
	v, err := b.get(name, Color)
	return v.v, err
}

func (b *Block) Matrix(name string) (mathutil.Mat4, error) {
	v, err := b.get(name, Matrix)
	return v.m, err
}

// Slot is one declared uniform.
type Slot struct {
	Name string
	Kind Kind
}

// Schema is the uniform set a program declares.
type Schema []Slot

// Check verifies that b sets exactly the declared slots with the declared
// kinds. All problems are reported together.
func (s Schema) Check(b *Block) error {
	var errs []error
	declared := make(map[string]bool, len(s))
	for _, slot := range s {
		if declared[slot.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDeclared, slot.Name))
			continue
		}
		declared[slot.Name] = true
		if _, err := b.get(slot.Name, slot.Kind); err != nil {
			errs = append(errs, err)
		}
	}
	for _, name := range b.Names() {
		if !declared[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrUnknown, name))
		}
	}
	return errors.Join(errs...)
}
