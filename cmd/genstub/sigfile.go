package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/typesystem"
)

// paramFile is the on-disk shape of one parameter (or the return value, at
// Index 0) in a signature file.
type paramFile struct {
	Index          int    `json:"index"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	In             bool   `json:"in"`
	Out            bool   `json:"out"`
	Optional       bool   `json:"optional"`
	NativeTag      string `json:"nativeTag"`
	SizeConst      *int   `json:"sizeConst"`
	SizeParamIndex *int   `json:"sizeParamIndex"`
}

// sigFile is the on-disk shape read by -sig: a single managed method
// signature, described independently of any particular host compiler's
// type model.
type sigFile struct {
	Namespace  string      `json:"namespace"`
	TypeName   string      `json:"typeName"`
	MethodName string      `json:"methodName"`
	CharSet    string      `json:"charSet"`
	Direction  string      `json:"direction"`
	Parameters []paramFile `json:"parameters"`
}

func loadSigFile(path string) (*sigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature file: %w", err)
	}
	var sf sigFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse signature file: %w", err)
	}
	return &sf, nil
}

var namedTypes = map[string]*typesystem.Simple{
	"void":           typesystem.Void,
	"bool":           typesystem.Bool,
	"char":           typesystem.Char,
	"sbyte":          typesystem.SByte,
	"byte":           typesystem.Byte,
	"int16":          typesystem.Int16,
	"uint16":         typesystem.UInt16,
	"int32":          typesystem.Int32,
	"uint32":         typesystem.UInt32,
	"int64":          typesystem.Int64,
	"uint64":         typesystem.UInt64,
	"intptr":         typesystem.IntPtr,
	"uintptr":        typesystem.UIntPtr,
	"single":         typesystem.Single,
	"double":         typesystem.Double,
	"string":         typesystem.String,
	"object":         typesystem.Object,
	"decimal":        typesystem.Decimal,
	"guid":           typesystem.Guid,
	"datetime":       typesystem.DateTime,
	"stringbuilder":  typesystem.StringBuilder,
	"safehandle":     typesystem.SafeHandle,
	"handleref":      typesystem.HandleRef,
	"criticalhandle": typesystem.CriticalHandle,
}

// parseType turns a signature file's type string into a typesystem.Type.
// Accepts a bare name ("int32"), a by-reference wrapper ("ref int32",
// "out string"), or a single-dimensional array suffix ("int32[]").
func parseType(s string) (typesystem.Type, error) {
	s = strings.TrimSpace(s)
	if rest, ok := cutPrefixWord(s, "ref"); ok {
		elem, err := parseType(rest)
		if err != nil {
			return nil, err
		}
		return typesystem.ByRef(elem), nil
	}
	if rest, ok := cutPrefixWord(s, "out"); ok {
		elem, err := parseType(rest)
		if err != nil {
			return nil, err
		}
		return typesystem.ByRef(elem), nil
	}
	if strings.HasSuffix(s, "[]") {
		elem, err := parseType(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return nil, err
		}
		return typesystem.ArrayOf(elem), nil
	}
	t, ok := namedTypes[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("unknown type %q (known: %s)", s, knownTypeNames())
	}
	return t, nil
}

func cutPrefixWord(s, word string) (string, bool) {
	if !strings.HasPrefix(s, word+" ") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(s, word+" ")), true
}

func knownTypeNames() string {
	names := make([]string, 0, len(namedTypes))
	for n := range namedTypes {
		names = append(names, n)
	}
	return strings.Join(names, ", ")
}

var nativeTags = map[string]abi.NativeTag{
	"i1":         abi.NativeTagI1,
	"u1":         abi.NativeTagU1,
	"i2":         abi.NativeTagI2,
	"u2":         abi.NativeTagU2,
	"i4":         abi.NativeTagI4,
	"u4":         abi.NativeTagU4,
	"i8":         abi.NativeTagI8,
	"u8":         abi.NativeTagU8,
	"r4":         abi.NativeTagR4,
	"r8":         abi.NativeTagR8,
	"lpstr":      abi.NativeTagLPStr,
	"lpwstr":     abi.NativeTagLPWStr,
	"lpstruct":   abi.NativeTagLPStruct,
	"struct":     abi.NativeTagStruct,
	"boolean":    abi.NativeTagBoolean,
	"array":      abi.NativeTagArray,
	"byvalarray": abi.NativeTagByValArray,
	"func":       abi.NativeTagFunc,
}

func parseNativeTag(s string) (abi.NativeTag, error) {
	if s == "" {
		return abi.NativeTagNone, nil
	}
	tag, ok := nativeTags[strings.ToLower(s)]
	if !ok {
		return abi.NativeTagNone, fmt.Errorf("unknown native tag %q", s)
	}
	return tag, nil
}

func parseCharSet(s string) abi.CharSet {
	switch strings.ToLower(s) {
	case "ansi":
		return abi.CharSetAnsi
	case "auto":
		return abi.CharSetAuto
	default:
		return abi.CharSetUnicode
	}
}

func parseDirection(s string) abi.Direction {
	if strings.EqualFold(s, "reverse") {
		return abi.Reverse
	}
	return abi.Forward
}

// toMethodSignature resolves a sigFile's string-typed fields into the
// Policy and orchestratorInput that run assembles into the
// marshal.MethodSignature the orchestrator consumes.
func (sf *sigFile) toMethodSignature() (*abi.Policy, orchestratorInput, error) {
	policy := abi.DefaultPolicy(parseCharSet(sf.CharSet))

	params := make([]*abi.ParameterMetadata, 0, len(sf.Parameters))
	for _, pf := range sf.Parameters {
		t, err := parseType(pf.Type)
		if err != nil {
			return nil, orchestratorInput{}, fmt.Errorf("parameter %d (%s): %w", pf.Index, pf.Name, err)
		}

		var marshalAs *abi.MarshalAsDescriptor
		tag, err := parseNativeTag(pf.NativeTag)
		if err != nil {
			return nil, orchestratorInput{}, fmt.Errorf("parameter %d (%s): %w", pf.Index, pf.Name, err)
		}
		if tag != abi.NativeTagNone || pf.SizeConst != nil || pf.SizeParamIndex != nil {
			d := abi.MarshalAsDescriptor{Type: tag}
			if pf.SizeConst != nil {
				d = d.WithSizeConst(*pf.SizeConst)
			}
			if pf.SizeParamIndex != nil {
				d = d.WithSizeParamIndex(*pf.SizeParamIndex)
			}
			marshalAs = &d
		}

		params = append(params, &abi.ParameterMetadata{
			Index:     pf.Index,
			Name:      pf.Name,
			Type:      t,
			In:        pf.In,
			Out:       pf.Out,
			Return:    pf.Index == 0,
			Optional:  pf.Optional,
			MarshalAs: marshalAs,
		})
	}

	return &policy, orchestratorInput{
		Namespace:  sf.Namespace,
		TypeName:   sf.TypeName,
		MethodName: sf.MethodName,
		Direction:  parseDirection(sf.Direction),
		Parameters: params,
	}, nil
}

// orchestratorInput is the subset of marshal.MethodSignature this package
// assembles before attaching the resolved Policy.
type orchestratorInput struct {
	Namespace  string
	TypeName   string
	MethodName string
	Direction  abi.Direction
	Parameters []*abi.ParameterMetadata
}
