package resolve

import (
	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/options"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func optionsSplit(opts []ast.Option, names ...string) (map[string]ast.Option, []ast.Option) {
	return options.Split(opts, names...)
}

func toUninterpreted(rest []ast.Option) []*descriptorpb.UninterpretedOption {
	var out []*descriptorpb.UninterpretedOption
	for _, o := range rest {
		out = append(out, options.ToUninterpreted(o))
	}
	return out
}

func (g *generator) fileOptions(special map[string]ast.Option, rest []ast.Option) *descriptorpb.FileOptions {
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	fo := &descriptorpb.FileOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			fo.Deprecated = proto.Bool(b)
		}
	}
	return fo
}

// messageOptions builds MessageOptions, forcing MapEntry=true for
// compiler-synthesized map-entry messages regardless of what (if anything)
// the user wrote, since that option is structural, not user-authored.
func (g *generator) messageOptions(opts []ast.Option, isMapEntry bool) *descriptorpb.MessageOptions {
	special, rest := optionsSplit(opts, options.NameDeprecated, options.NameMapEntry, options.NameMessageSetWireFormat)
	if len(rest) == 0 && len(special) == 0 && !isMapEntry {
		return nil
	}
	mo := &descriptorpb.MessageOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			mo.Deprecated = proto.Bool(b)
		}
	}
	if d, ok := special[options.NameMessageSetWireFormat]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			mo.MessageSetWireFormat = proto.Bool(b)
		}
	}
	if isMapEntry {
		mo.MapEntry = proto.Bool(true)
	} else if d, ok := special[options.NameMapEntry]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			mo.MapEntry = proto.Bool(b)
		}
	}
	return mo
}

func (g *generator) enumOptions(opts []ast.Option) *descriptorpb.EnumOptions {
	special, rest := optionsSplit(opts, options.NameDeprecated)
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	eo := &descriptorpb.EnumOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			eo.Deprecated = proto.Bool(b)
		}
	}
	return eo
}

func (g *generator) enumValueOptions(opts []ast.Option) *descriptorpb.EnumValueOptions {
	special, rest := optionsSplit(opts, options.NameDeprecated)
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	o := &descriptorpb.EnumValueOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			o.Deprecated = proto.Bool(b)
		}
	}
	return o
}

func (g *generator) serviceOptions(opts []ast.Option) *descriptorpb.ServiceOptions {
	special, rest := optionsSplit(opts, options.NameDeprecated)
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	o := &descriptorpb.ServiceOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			o.Deprecated = proto.Bool(b)
		}
	}
	return o
}

func (g *generator) methodOptions(opts []ast.Option) *descriptorpb.MethodOptions {
	special, rest := optionsSplit(opts, options.NameDeprecated)
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	o := &descriptorpb.MethodOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			o.Deprecated = proto.Bool(b)
		}
	}
	return o
}

func (g *generator) oneofOptions(opts []ast.Option) *descriptorpb.OneofOptions {
	if len(opts) == 0 {
		return nil
	}
	return &descriptorpb.OneofOptions{UninterpretedOption: toUninterpreted(opts)}
}

// fieldOptions builds FieldOptions from a field's option list minus the
// structural pseudo-options (json_name, default) that the caller has
// already pulled out and applied directly to the FieldDescriptorProto.
func (g *generator) fieldOptions(rest []ast.Option, special map[string]ast.Option) *descriptorpb.FieldOptions {
	if len(rest) == 0 && len(special) == 0 {
		return nil
	}
	fo := &descriptorpb.FieldOptions{UninterpretedOption: toUninterpreted(rest)}
	if d, ok := special[options.NameDeprecated]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			fo.Deprecated = proto.Bool(b)
		}
	}
	if d, ok := special[options.NamePacked]; ok {
		if b, ok2 := options.BoolValue(d); ok2 {
			fo.Packed = proto.Bool(b)
		}
	}
	return fo
}
