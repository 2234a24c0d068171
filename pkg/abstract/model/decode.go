package model

import (
	"github.com/mitchellh/mapstructure"
	"github.com/transferia/tweetstream/pkg/abstract"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Decode fills out from loosely typed params: strings are converted to numbers,
// booleans and durations ("3s") where the target field asks for them.
// Unknown keys are ignored.
func Decode(params any, out any) error {
	return decode(params, out, false)
}

// DecodeStrict is Decode that rejects unknown keys.
func DecodeStrict(params any, out any) error {
	return decode(params, out, true)
}

func decode(params any, out any, errorUnused bool) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused:      errorUnused,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return xerrors.Errorf("unable to build decoder: %w", err)
	}
	if err := decoder.Decode(params); err != nil {
		return xerrors.Errorf("unable to decode %T: %w", out, err)
	}
	return nil
}

// NewDestination decodes params into the registered destination model of typ,
// applies defaults and validates it.
func NewDestination(typ abstract.ProviderType, params map[string]any) (Destination, error) {
	fac, ok := DestinationF(typ)
	if !ok {
		return nil, xerrors.Errorf("unknown destination type: %s, known: %v", typ, KnownDestinations())
	}
	dst := fac()
	if params != nil {
		if err := DecodeStrict(params, dst); err != nil {
			return nil, xerrors.Errorf("invalid %s destination params: %w", typ, err)
		}
	}
	dst.WithDefaults()
	if err := dst.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid %s destination: %w", typ, err)
	}
	return dst, nil
}

// NewSource decodes string options into the registered source model of typ,
// applies defaults and validates it.
func NewSource(typ abstract.ProviderType, options map[string]string) (Source, error) {
	fac, ok := SourceF(typ)
	if !ok {
		return nil, xerrors.Errorf("unknown source type: %s, known: %v", typ, KnownSources())
	}
	src := fac()
	if err := Decode(options, src); err != nil {
		return nil, xerrors.Errorf("invalid %s source options: %w", typ, err)
	}
	src.WithDefaults()
	if err := src.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid %s source: %w", typ, err)
	}
	return src, nil
}
