package codebook

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// TagName is the struct tag naming the cipher applied to a field.
const TagName = "codebook"

func init() {
	sentinel.Tag(TagName)
}

// Processor encodes tagged struct fields on the way out and decodes them on
// the way in.
//
//	type Dispatch struct {
//	    From string `json:"from"`
//	    Body string `json:"body" codebook:"vigenere"`
//	}
//
// Seal clones the value, encodes every tagged field with its cipher and the key
// set for that cipher, then marshals with the codec. Open unmarshals and
// decodes. Untagged fields are left alone.
//
// Supported field types are string, []byte, []string and map[K]string, in
// nested structs and through pointers to structs.
//
// Processors are safe for concurrent use; SetKey may be called at any time.
type Processor[T Cloner[T]] struct {
	codec    Codec
	registry *Registry

	// Mutable configuration protected by mu
	mu   sync.RWMutex
	keys map[string]Key

	// Immutable after construction
	fields   []fieldPlan
	typeName string
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*processorConfig)

type processorConfig struct {
	registry *Registry
	keys     map[string]Key
}

// WithRegistry resolves tag names against r instead of Default().
func WithRegistry(r *Registry) ProcessorOption {
	return func(c *processorConfig) {
		c.registry = r
	}
}

// WithKey sets the key used for cipher. Equivalent to SetKey after construction.
func WithKey(cipher string, key Key) ProcessorOption {
	return func(c *processorConfig) {
		c.keys[Normalize(cipher)] = key
	}
}

// NewProcessor creates a Processor for T. Every codebook tag must name a cipher
// in the registry; unknown names fail with ErrInvalidTag.
func NewProcessor[T Cloner[T]](codec Codec, opts ...ProcessorOption) (*Processor[T], error) {
	cfg := &processorConfig{keys: make(map[string]Key)}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = Default()
	}

	plans, err := getOrBuildPlans[T]()
	if err != nil {
		return nil, err
	}

	fields := make([]fieldPlan, len(plans.fields))
	for i, plan := range plans.fields {
		if _, err := cfg.registry.Lookup(plan.tagVal); err != nil {
			return nil, newConfigError(ErrInvalidTag, plan.tagVal, "field "+plan.name)
		}
		plan.cipher = Normalize(plan.tagVal)
		fields[i] = plan
	}

	p := &Processor[T]{
		codec:    codec,
		registry: cfg.registry,
		keys:     cfg.keys,
		fields:   fields,
		typeName: plans.typeName,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName, len(fields))
	return p, nil
}

// SetKey sets the key used for every field tagged with cipher.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetKey(cipher string, key Key) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys[Normalize(cipher)] = key
	return p
}

// Fields returns the dotted names of the tagged fields.
func (p *Processor[T]) Fields() []string {
	names := make([]string, len(p.fields))
	for i, f := range p.fields {
		names[i] = f.name
	}
	return names
}

// transformer returns a TransformFunc bound to the current keys.
// Callers must hold p.mu.
func (p *Processor[T]) transformer(decode bool) TransformFunc {
	return func(name, text string) (string, error) {
		c, err := p.registry.Lookup(name)
		if err != nil {
			return "", err
		}
		key := p.keys[Normalize(name)]
		if decode {
			return c.Decode(text, key)
		}
		return c.Encode(text, key)
	}
}

// Seal encodes tagged fields on a clone of obj and marshals the result.
func (p *Processor[T]) Seal(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	emitSealStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitSealComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), len(p.fields), retErr)
	}()

	if obj == nil {
		retData, retErr = p.marshal(nil)
		return retData, retErr
	}

	// Clone to avoid mutating original
	clone := (*obj).Clone()

	p.mu.RLock()
	defer p.mu.RUnlock()

	encode := p.transformer(false)
	if e, ok := any(&clone).(Encodable); ok {
		if err := e.EncodeFields(encode); err != nil {
			retErr = fmt.Errorf("encode: %w", err)
			return nil, retErr
		}
	} else if err := p.apply(&clone, encode); err != nil {
		retErr = fmt.Errorf("encode: %w", err)
		return nil, retErr
	}

	retData, retErr = p.marshal(&clone)
	return retData, retErr
}

// Open unmarshals data and decodes tagged fields.
func (p *Processor[T]) Open(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()
	emitOpenStart(ctx, p.codec.ContentType(), p.typeName, len(data))

	var retErr error
	defer func() {
		emitOpenComplete(ctx, p.codec.ContentType(), p.typeName,
			time.Since(start), len(p.fields), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	decode := p.transformer(true)
	if d, ok := any(&obj).(Decodable); ok {
		if err := d.DecodeFields(decode); err != nil {
			retErr = fmt.Errorf("decode: %w", err)
			return nil, retErr
		}
		return &obj, nil
	}

	if err := p.apply(&obj, decode); err != nil {
		retErr = fmt.Errorf("decode: %w", err)
		return nil, retErr
	}
	return &obj, nil
}

func (p *Processor[T]) marshal(v any) ([]byte, error) {
	data, err := p.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// apply runs fn over every tagged field via reflection.
func (p *Processor[T]) apply(obj *T, fn TransformFunc) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.fields {
		field, ok := plan.resolve(rv)
		if !ok {
			continue
		}

		// Handle slice of strings
		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if !elem.CanSet() {
					continue
				}
				out, err := fn(plan.cipher, elem.String())
				if err != nil {
					return fmt.Errorf("field %s[%d]: %w", plan.name, i, err)
				}
				elem.SetString(out)
			}
			continue
		}

		// Handle map of strings
		if plan.isMap {
			iter := field.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				out, err := fn(plan.cipher, v.String())
				if err != nil {
					return fmt.Errorf("field %s[%v]: %w", plan.name, k.Interface(), err)
				}
				field.SetMapIndex(k, reflect.ValueOf(out).Convert(field.Type().Elem()))
			}
			continue
		}

		// Handle scalar string or []byte
		if !field.CanSet() {
			continue
		}

		var text string
		if plan.isBytes {
			text = string(field.Bytes())
		} else {
			text = field.String()
		}

		out, err := fn(plan.cipher, text)
		if err != nil {
			return fmt.Errorf("field %s: %w", plan.name, err)
		}

		if plan.isBytes {
			field.SetBytes([]byte(out))
		} else {
			field.SetString(out)
		}
	}

	return nil
}
