package config

import (
	"github.com/danmuck/msgc/internal/emit"
	"github.com/danmuck/msgc/internal/protocol/codec"
	"github.com/danmuck/msgc/internal/protocol/schema"
)

func (c Config) SchemaOptions() schema.Options {
	return schema.Options{LengthField: c.Layout.LengthField}
}

func (c Config) DispatchOptions() codec.Options {
	return codec.Options{
		TagOffset:   c.Dispatch.TagOffset,
		TagWidth:    c.Dispatch.TagWidth,
		MinPeekSize: c.Dispatch.MinPeekSize,
	}
}

func (c Config) EmitOptions() emit.Options {
	return emit.Options{
		Package:       c.Package,
		Prefix:        c.Prefix,
		RuntimeImport: c.RuntimeImport,
		Dispatch:      c.DispatchOptions(),
	}
}
