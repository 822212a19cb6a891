package sim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gomlx/gokernel/dtypes"
	"github.com/gomlx/gokernel/ocl"
	"github.com/pkg/errors"
)

// ParamKind is how a kernel parameter is passed.
type ParamKind int

//go:generate go tool enumer -type=ParamKind -trimprefix=Param -transform=lower parse.go

const (
	// ParamScalar is a value passed by copy: scalars and vectors (e.g. float4).
	ParamScalar ParamKind = iota

	// ParamGlobal is a pointer to __global or __constant memory: it takes a memory object.
	ParamGlobal

	// ParamLocal is a pointer to __local memory: it takes a local memory size.
	ParamLocal
)

// Param is a kernel parameter declaration.
type Param struct {
	Name     string
	TypeName string
	Kind     ParamKind

	// Size in bytes expected by SetKernelArg: the size of the scalar/vector or ocl.PointerSize for global memory.
	// It is 0 for local memory, whose size is given by the argument.
	Size int
}

// KernelDecl is a kernel entry point found in the source.
type KernelDecl struct {
	Name   string
	Params []Param
}

// attributes matches any number of __attribute__((...)) groups, with one level of nested parenthesis,
// e.g. __attribute__((reqd_work_group_size(64, 1, 1))).
const attributes = `(?:__attribute__\s*\(\((?:[^()]|\([^()]*\))*\)\)\s*)*`

var (
	reBlockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reLineComment  = regexp.MustCompile(`//[^\n]*`)
	reErrorPragma  = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*error[ \t]*(.*)$`)
	reKernel       = regexp.MustCompile(`(?:__kernel|\bkernel)\s+` + attributes + `void\s+` + attributes + `([A-Za-z_]\w*)\s*\(([^)]*)\)`)
	reVectorType   = regexp.MustCompile(`^([a-z]+?)(2|3|4|8|16)?$`)
	reDefineOption = regexp.MustCompile(`^-D([A-Za-z_]\w*)(=.*)?$`)
)

// qualifiers that are ignored when parsing parameters.
var ignoredQualifiers = map[string]bool{
	"const": true, "restrict": true, "__restrict": true, "volatile": true,
	"__private": true, "private": true, "__read_only": true, "__write_only": true,
}

// ParseKernels scans the source and returns the kernel entry points it declares, in order of declaration.
//
// It is not a compiler: it only checks that braces and parentheses are balanced, "#error" directives,
// and that every kernel parameter has a known type. Diagnostics are returned as a build log, one per line
// in the format "<line>: error: <message>".
func ParseKernels(source string) ([]KernelDecl, string, error) {
	var log strings.Builder
	stripped := stripComments(source)

	for _, match := range reErrorPragma.FindAllStringSubmatchIndex(stripped, -1) {
		fmt.Fprintf(&log, "%d: error: #error %s\n", lineOf(stripped, match[0]), stripped[match[2]:match[3]])
	}
	if line, msg := checkBalanced(stripped); msg != "" {
		fmt.Fprintf(&log, "%d: error: %s\n", line, msg)
	}

	var decls []KernelDecl
	seen := make(map[string]bool)
	for _, match := range reKernel.FindAllStringSubmatchIndex(stripped, -1) {
		line := lineOf(stripped, match[0])
		name := stripped[match[2]:match[3]]
		if seen[name] {
			fmt.Fprintf(&log, "%d: error: redefinition of kernel %q\n", line, name)
			continue
		}
		seen[name] = true
		params, err := parseParams(stripped[match[4]:match[5]])
		if err != nil {
			fmt.Fprintf(&log, "%d: error: kernel %q: %v\n", line, name, err)
			continue
		}
		decls = append(decls, KernelDecl{Name: name, Params: params})
	}
	if log.Len() > 0 {
		return nil, log.String(), errors.New("build failed")
	}
	return decls, "", nil
}

func stripComments(source string) string {
	// Keep new lines of block comments, so line numbers are preserved.
	source = reBlockComment.ReplaceAllStringFunc(source, func(comment string) string {
		return strings.Repeat("\n", strings.Count(comment, "\n"))
	})
	return reLineComment.ReplaceAllString(source, "")
}

func lineOf(source string, offset int) int {
	return strings.Count(source[:offset], "\n") + 1
}

// checkBalanced returns the line and message of the first unbalanced brace or parenthesis.
func checkBalanced(source string) (int, string) {
	var stack []rune
	var lines []int
	line := 1
	closing := map[rune]rune{')': '(', '}': '{', ']': '['}
	for _, r := range source {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
			lines = append(lines, line)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != closing[r] {
				return line, fmt.Sprintf("unexpected %q", r)
			}
			stack = stack[:len(stack)-1]
			lines = lines[:len(lines)-1]
		}
	}
	if len(stack) > 0 {
		return lines[len(lines)-1], fmt.Sprintf("unclosed %q", stack[len(stack)-1])
	}
	return 0, ""
}

func parseParams(list string) ([]Param, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "void" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	params := make([]Param, 0, len(parts))
	for ii, part := range parts {
		param, err := parseParam(part)
		if err != nil {
			return nil, errors.WithMessagef(err, "parameter #%d (%q)", ii, strings.TrimSpace(part))
		}
		params = append(params, param)
	}
	return params, nil
}

func parseParam(decl string) (Param, error) {
	fields := strings.Fields(strings.ReplaceAll(decl, "*", " * "))
	if len(fields) < 2 {
		return Param{}, errors.New("missing type or name")
	}
	param := Param{Name: fields[len(fields)-1]}
	var (
		addressSpace string
		pointer      bool
		unsigned     bool
		typeNames    []string
	)
	for _, field := range fields[:len(fields)-1] {
		switch {
		case field == "*":
			if pointer {
				return Param{}, errors.New("pointer to pointer is not a valid kernel parameter")
			}
			pointer = true
		case field == "__global" || field == "global" || field == "__constant" || field == "constant":
			addressSpace = "global"
		case field == "__local" || field == "local":
			addressSpace = "local"
		case field == "unsigned":
			unsigned = true
		case ignoredQualifiers[field]:
		default:
			typeNames = append(typeNames, field)
		}
	}
	if len(typeNames) == 0 && unsigned {
		typeNames = []string{"int"}
	}
	if len(typeNames) != 1 {
		return Param{}, errors.Errorf("can't parse type from %q", strings.Join(typeNames, " "))
	}
	param.TypeName = typeNames[0]
	if unsigned {
		param.TypeName = "u" + param.TypeName
	}

	if pointer {
		switch addressSpace {
		case "global":
			param.Kind = ParamGlobal
			param.Size = ocl.PointerSize
		case "local":
			param.Kind = ParamLocal
		default:
			return Param{}, errors.New("pointer parameters must point to __global, __constant or __local memory")
		}
		return param, nil
	}
	if addressSpace != "" {
		return Param{}, errors.New("address space qualifier on a non-pointer parameter")
	}
	size, err := typeSize(param.TypeName)
	if err != nil {
		return Param{}, err
	}
	param.Kind = ParamScalar
	param.Size = size
	return param, nil
}

// typeSize returns the size of a scalar or vector type, e.g.: "float" -> 4, "float4" -> 16, "int3" -> 16.
func typeSize(typeName string) (int, error) {
	match := reVectorType.FindStringSubmatch(typeName)
	if match == nil {
		return 0, errors.Errorf("unknown type name %q", typeName)
	}
	dtype := dtypes.FromKernelTypeName(match[1])
	if dtype == dtypes.Invalid {
		return 0, errors.Errorf("unknown type name %q", typeName)
	}
	if match[2] == "" {
		return dtype.Size(), nil
	}
	n, _ := strconv.Atoi(match[2])
	if n == 3 {
		// 3-component vectors have the size of 4-component vectors.
		n = 4
	}
	return n * dtype.Size(), nil
}

// checkOptions validates build options: "-D" definitions and other flags starting with "-".
func checkOptions(options []string) string {
	for _, option := range options {
		if !strings.HasPrefix(option, "-") {
			return fmt.Sprintf("error: invalid build option %q", option)
		}
		if strings.HasPrefix(option, "-D") && !reDefineOption.MatchString(option) {
			return fmt.Sprintf("error: invalid macro definition %q", option)
		}
	}
	return ""
}
