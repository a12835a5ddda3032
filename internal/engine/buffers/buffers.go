// Package buffers provides a growable set of named, strided float32 channels
// that share one vertex count. Geometry builders allocate a vertex range once
// and fill each channel by index before handing the slices to the GPU.
package buffers

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownChannel is returned when writing to a channel that was never created.
	ErrUnknownChannel = errors.New("buffers: unknown channel")
	// ErrOutOfRange is returned when a write exceeds the allocated vertex range.
	ErrOutOfRange = errors.New("buffers: write out of range")
	// ErrComponentMismatch is returned when a value does not match the channel stride.
	ErrComponentMismatch = errors.New("buffers: component count mismatch")
)

type channel struct {
	components int
	data       []float32
}

// Buffers holds named channels that grow together.
type Buffers struct {
	capacity int
	count    int
	channels map[string]*channel
	order    []string
}

// New returns an empty set with room for capacity vertices per channel.
func New(capacity int) *Buffers {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffers{
		capacity: capacity,
		channels: make(map[string]*channel),
	}
}

// Create adds a channel with the given number of components per vertex.
// Creating an existing channel replaces it.
func (b *Buffers) Create(name string, components int) {
	if _, ok := b.channels[name]; !ok {
		b.order = append(b.order, name)
	}
	b.channels[name] = &channel{
		components: components,
		data:       make([]float32, b.capacity*components),
	}
}

// Alloc reserves n vertices in every channel and returns the first index.
func (b *Buffers) Alloc(n int) int {
	start := b.count
	b.count += n
	if b.count > b.capacity {
		b.grow(b.count)
	}
	return start
}

func (b *Buffers) grow(min int) {
	capacity := b.capacity
	for capacity < min {
		capacity *= 2
	}
	for _, ch := range b.channels {
		data := make([]float32, capacity*ch.components)
		copy(data, ch.data)
		ch.data = data
	}
	b.capacity = capacity
}

// Write copies count vertices from values into channel name starting at start.
// values must hold count*components floats.
func (b *Buffers) Write(name string, values []float32, start, count int) error {
	ch, err := b.channel(name, start, count)
	if err != nil {
		return err
	}
	if len(values) != count*ch.components {
		return fmt.Errorf("%w: %s wants %d values, got %d", ErrComponentMismatch, name, count*ch.components, len(values))
	}
	copy(ch.data[start*ch.components:], values)
	return nil
}

// Repeat writes the single vertex value count times starting at start.
func (b *Buffers) Repeat(name string, value []float32, start, count int) error {
	ch, err := b.channel(name, start, count)
	if err != nil {
		return err
	}
	if len(value) != ch.components {
		return fmt.Errorf("%w: %s has %d components, got %d", ErrComponentMismatch, name, ch.components, len(value))
	}
	for i := 0; i < count; i++ {
		copy(ch.data[(start+i)*ch.components:], value)
	}
	return nil
}

func (b *Buffers) channel(name string, start, count int) (*channel, error) {
	ch, ok := b.channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, name)
	}
	if start < 0 || count < 0 || start+count > b.count {
		return nil, fmt.Errorf("%w: %s [%d, %d) of %d", ErrOutOfRange, name, start, start+count, b.count)
	}
	return ch, nil
}

// Get returns the allocated part of channel name, or nil if it does not exist.
func (b *Buffers) Get(name string) []float32 {
	ch, ok := b.channels[name]
	if !ok {
		return nil
	}
	return ch.data[:b.count*ch.components]
}

// Components returns the stride of channel name, or 0 if it does not exist.
func (b *Buffers) Components(name string) int {
	if ch, ok := b.channels[name]; ok {
		return ch.components
	}
	return 0
}

// Count returns the number of allocated vertices.
func (b *Buffers) Count() int {
	return b.count
}

// Names returns channel names in creation order.
func (b *Buffers) Names() []string {
	return append([]string(nil), b.order...)
}
