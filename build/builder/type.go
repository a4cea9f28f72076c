// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package builder

import (
	"github.com/gsomix/Cesium/build/fmterr"
	"github.com/gsomix/Cesium/build/ir"
	"github.com/gsomix/Cesium/build/ir/irkind"
	"github.com/gsomix/Cesium/build/syntax"
)

// resolveSpecs returns the type described by declaration specifiers.
func (b *Builder) resolveSpecs(specs *syntax.DeclSpecs) (ir.Type, error) {
	if specs.Struct != nil {
		if len(specs.Words) > 0 {
			return nil, b.Errorf(specs, "two or more data types in declaration specifiers")
		}
		return b.resolveStruct(specs.Struct)
	}
	kind := irkind.KindFromSpecifiers(specs.Words)
	if kind == irkind.Invalid {
		return nil, b.Errorf(specs, "invalid type specifiers %v", specs.Words)
	}
	return ir.TypeFromKind(kind), nil
}

// resolveStruct returns the structure of a struct specifier.
// A specifier without fields refers to a previously declared structure
// or declares it.
func (b *Builder) resolveStruct(spec *syntax.StructSpec) (ir.Type, error) {
	if spec.Fields == nil {
		if spec.Tag == "" {
			return nil, b.Errorf(spec, "anonymous structure without fields")
		}
		if st, ok := b.mod.Struct(spec.Tag); ok {
			return st, nil
		}
		st := &ir.StructType{Tag: spec.Tag}
		if err := b.mod.DeclareStruct(b.FSet, spec, st); err != nil {
			return nil, err
		}
		return st, nil
	}
	st := &ir.StructType{Tag: spec.Tag, Fields: []*ir.Field{}}
	for _, fieldDecl := range spec.Fields {
		name, typ, err := b.declaredType(fieldDecl.Specs, fieldDecl.Declarator)
		if err != nil {
			return nil, err
		}
		if field, _ := st.FieldByName(name); field != nil {
			return nil, b.Errorf(fieldDecl, "duplicate member %s", name)
		}
		st.Fields = append(st.Fields, &ir.Field{Name: name, Typ: typ})
	}
	if err := b.mod.DeclareStruct(b.FSet, spec, st); err != nil {
		return nil, err
	}
	if registered, ok := b.mod.Struct(spec.Tag); ok {
		return registered, nil
	}
	return st, nil
}

// declaredType returns the name and the type declared by a declarator.
func (b *Builder) declaredType(specs *syntax.DeclSpecs, decl syntax.Declarator) (string, ir.Type, error) {
	base, err := b.resolveSpecs(specs)
	if err != nil {
		return "", nil, err
	}
	name, err := syntax.GetIdentifier(decl)
	if err != nil {
		return "", nil, b.Errorf(specs, "declaration does not declare anything: %v", err)
	}
	typ, err := b.derive(base, decl)
	if err != nil {
		return "", nil, err
	}
	return name, typ, nil
}

// derive applies the derivations of a declarator to a base type,
// from the outermost declarator to the identifier.
func (b *Builder) derive(typ ir.Type, decl syntax.Declarator) (ir.Type, error) {
	for decl != nil {
		switch declT := decl.(type) {
		case *syntax.IdentDeclarator:
			return typ, nil
		case *syntax.PointerDeclarator:
			typ = ir.PointerTo(typ)
			decl = declT.Base
		case *syntax.FuncDeclarator:
			params, err := b.paramsInfo(declT.Params)
			if err != nil {
				return nil, err
			}
			typ = &ir.FuncType{Params: params, Return: typ}
			decl = declT.Base
		case *syntax.ArrayDeclarator:
			return nil, b.Unimplementedf(declT, fmterr.WipArray, "array declarator not supported, yet")
		default:
			return nil, b.Internalf(decl, "declarator %T not supported", decl)
		}
	}
	return typ, nil
}

// paramsInfo returns the parameters of a function declarator.
func (b *Builder) paramsInfo(list *syntax.ParamList) (*ir.ParamsInfo, error) {
	if list == nil {
		return nil, nil
	}
	params := &ir.ParamsInfo{
		IsVoid:   list.Void,
		IsVarArg: list.VarArg,
	}
	for _, decl := range list.Params {
		base, err := b.resolveSpecs(decl.Specs)
		if err != nil {
			return nil, err
		}
		param := &ir.ParameterInfo{}
		if decl.Declarator != nil && !syntax.IsAbstract(decl.Declarator) {
			param.Name, _ = syntax.GetIdentifier(decl.Declarator)
		}
		if param.Typ, err = b.derive(base, decl.Declarator); err != nil {
			return nil, err
		}
		if ir.IsVoid(param.Typ) {
			return nil, b.Errorf(decl, "parameter %s has incomplete type void", param.String())
		}
		params.Params = append(params.Params, param)
	}
	return params, nil
}

// typeName returns the type of a cast.
func (b *Builder) typeName(tn *syntax.TypeName) (ir.Type, error) {
	base, err := b.resolveSpecs(tn.Specs)
	if err != nil {
		return nil, err
	}
	return b.derive(base, tn.Declarator)
}
