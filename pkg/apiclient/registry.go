package apiclient

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Decoder builds a typed value from raw decoded JSON.
type Decoder func(raw any) (any, error)

// Registry maps model tags to decoders. Tags are matched case-insensitively.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry returns a registry with optional pre-registered decoders.
func NewRegistry(decoders map[string]Decoder) *Registry {
	r := &Registry{decoders: make(map[string]Decoder)}
	for tag, d := range decoders {
		r.Register(tag, d)
	}
	return r
}

// Register associates a decoder with a model tag.
func (r *Registry) Register(tag string, decoder Decoder) {
	if tag = strings.ToLower(strings.TrimSpace(tag)); tag == "" || decoder == nil {
		return
	}

	r.mu.Lock()
	r.decoders[tag] = decoder
	r.mu.Unlock()
}

// DecoderFor returns the decoder registered for tag.
func (r *Registry) DecoderFor(tag string) (Decoder, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[strings.ToLower(strings.TrimSpace(tag))]
	return d, ok
}

// Tags lists the registered model tags.
func (r *Registry) Tags() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.decoders))
	for tag := range r.decoders {
		out = append(out, tag)
	}
	return out
}

// ModelDecoder returns a Decoder that maps raw JSON objects onto T using its
// json struct tags. Scalars are weakly typed ("42" fills an int field) and
// RFC 3339 strings fill time.Time fields.
func ModelDecoder[T any]() Decoder {
	return func(raw any) (any, error) {
		var out T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           &out,
			DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		})
		if err != nil {
			return nil, fmt.Errorf("build model decoder: %w", err)
		}
		if err := dec.Decode(raw); err != nil {
			return nil, err
		}
		return out, nil
	}
}
