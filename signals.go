package codebook

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for codebook events.
var (
	SignalRegistryCreated  = capitan.NewSignal("codebook.registry.created", "Registry instantiated")
	SignalEncodeStart      = capitan.NewSignal("codebook.encode.start", "Encode operation beginning")
	SignalEncodeComplete   = capitan.NewSignal("codebook.encode.complete", "Encode operation finished")
	SignalDecodeStart      = capitan.NewSignal("codebook.decode.start", "Decode operation beginning")
	SignalDecodeComplete   = capitan.NewSignal("codebook.decode.complete", "Decode operation finished")
	SignalProcessorCreated = capitan.NewSignal("codebook.processor.created", "Processor instantiated")
	SignalSealStart        = capitan.NewSignal("codebook.seal.start", "Seal operation beginning")
	SignalSealComplete     = capitan.NewSignal("codebook.seal.complete", "Seal operation finished")
	SignalOpenStart        = capitan.NewSignal("codebook.open.start", "Open operation beginning")
	SignalOpenComplete     = capitan.NewSignal("codebook.open.complete", "Open operation finished")
)

// Fields for typed event data. Keys are never emitted raw; see MaskKey and Fingerprint.
var (
	FieldCipher      = capitan.NewStringKey("cipher")
	FieldCipherCount = capitan.NewIntKey("cipher_count")
	FieldKeyKind     = capitan.NewStringKey("key_kind")
	FieldKeyPrint    = capitan.NewStringKey("key_fingerprint")
	FieldKeyMasked   = capitan.NewStringKey("key_masked")
	FieldContentType = capitan.NewStringKey("content_type")
	FieldTypeName    = capitan.NewStringKey("type_name")
	FieldSize        = capitan.NewIntKey("size")
	FieldDuration    = capitan.NewDurationKey("duration")
	FieldFieldCount  = capitan.NewIntKey("field_count")
	FieldError       = capitan.NewErrorKey("error")
)

// keyFields describes a key without its material.
func keyFields(key Key) []capitan.Field {
	return []capitan.Field{
		FieldKeyKind.Field(key.Kind().String()),
		FieldKeyPrint.Field(Fingerprint(key)),
		FieldKeyMasked.Field(MaskKey(key)),
	}
}

// emitRegistryCreated emits an event when a registry is built.
func emitRegistryCreated(ctx context.Context, count int) {
	capitan.Emit(ctx, SignalRegistryCreated,
		FieldCipherCount.Field(count),
	)
}

// transformFields describes one encode or decode call.
func transformFields(cipher string, key Key, size int) []capitan.Field {
	return append([]capitan.Field{
		FieldCipher.Field(cipher),
		FieldSize.Field(size),
	}, keyFields(key)...)
}

// emitEncodeStart emits an event when encode begins.
func emitEncodeStart(ctx context.Context, cipher string, key Key, size int) {
	capitan.Emit(ctx, SignalEncodeStart, transformFields(cipher, key, size)...)
}

// emitEncodeComplete emits an event when encode finishes.
func emitEncodeComplete(ctx context.Context, cipher string, key Key, size int, duration time.Duration, err error) {
	fields := append(transformFields(cipher, key, size), FieldDuration.Field(duration))
	if err != nil {
		fields = append(fields, FieldError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

// emitDecodeStart emits an event when decode begins.
func emitDecodeStart(ctx context.Context, cipher string, key Key, size int) {
	capitan.Emit(ctx, SignalDecodeStart, transformFields(cipher, key, size)...)
}

// emitDecodeComplete emits an event when decode finishes.
func emitDecodeComplete(ctx context.Context, cipher string, key Key, size int, duration time.Duration, err error) {
	fields := append(transformFields(cipher, key, size), FieldDuration.Field(duration))
	if err != nil {
		fields = append(fields, FieldError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string, fieldCount int) {
	capitan.Emit(ctx, SignalProcessorCreated,
		FieldContentType.Field(contentType),
		FieldTypeName.Field(typeName),
		FieldFieldCount.Field(fieldCount),
	)
}

// emitSealStart emits an event when seal begins.
func emitSealStart(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalSealStart,
		FieldContentType.Field(contentType),
		FieldTypeName.Field(typeName),
	)
}

// emitSealComplete emits an event when seal finishes.
func emitSealComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, encoded int, err error) {
	fields := []capitan.Field{
		FieldContentType.Field(contentType),
		FieldTypeName.Field(typeName),
		FieldSize.Field(size),
		FieldDuration.Field(duration),
		FieldFieldCount.Field(encoded),
	}
	if err != nil {
		fields = append(fields, FieldError.Field(err))
		capitan.Error(ctx, SignalSealComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSealComplete, fields...)
	}
}

// emitOpenStart emits an event when open begins.
func emitOpenStart(ctx context.Context, contentType, typeName string, size int) {
	capitan.Emit(ctx, SignalOpenStart,
		FieldContentType.Field(contentType),
		FieldTypeName.Field(typeName),
		FieldSize.Field(size),
	)
}

// emitOpenComplete emits an event when open finishes.
func emitOpenComplete(ctx context.Context, contentType, typeName string, duration time.Duration, decoded int, err error) {
	fields := []capitan.Field{
		FieldContentType.Field(contentType),
		FieldTypeName.Field(typeName),
		FieldDuration.Field(duration),
		FieldFieldCount.Field(decoded),
	}
	if err != nil {
		fields = append(fields, FieldError.Field(err))
		capitan.Error(ctx, SignalOpenComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalOpenComplete, fields...)
	}
}
