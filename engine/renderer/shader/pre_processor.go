// pre_processor.go implements the WGSL pre-processor. It scans shader source for @oxy:
// annotations, replaces them with injected struct sources or generated declarations, and
// records the declarations so the renderer can lay out bind groups without string lookups.
package shader

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-topdown/engine/camera"
)

// LineVertexSource is the WGSL VertexInput struct of the line pipeline.
//
//go:embed assets/line_vertex.wgsl
var LineVertexSource string

// LineShaderSource is the raw, unprocessed line shader.
//
//go:embed assets/line.wgsl
var LineShaderSource string

// registryEntry pairs an embedded WGSL struct source with the type name used in declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
}

// PreProcessor expands @oxy: annotations in WGSL source.
type PreProcessor interface {
	// Process replaces include annotations with the registered struct source and group
	// annotations with generated @group/@binding declarations.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the processed WGSL source
	//   - error: an error if an annotation is malformed or names an unknown type
	Process(source string) (string, error)

	// Declarations returns the group annotations collected by the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the camera and line vertex structs registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:     {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLineVertex: {Source: LineVertexSource, Type: "VertexInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform:   "var<uniform>",
			annotationArgStorageTypeRead:      "var<storage, read>",
			annotationArgStorageTypeReadWrite: "var<storage, read_write>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include argument %q", i+1, a.Args[0])
			}
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			varName := string(a.Args[1])
			var wgslType string
			if inner, ok := strings.CutPrefix(string(a.Args[2]), "array<"); ok {
				inner = strings.TrimSuffix(inner, ">")
				wgslType = fmt.Sprintf("array<%s>", p.structRegistry[AnnotationArg(inner)].Type)
			} else {
				wgslType = p.structRegistry[a.Args[2]].Type
			}
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, varName, wgslType))
			p.declarations = append(p.declarations, *a)
		default:
			return "", fmt.Errorf("line %d: unknown annotation type %q", i+1, a.Type)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

// LineShader returns the processed line shader and its declarations.
//
// Returns:
//   - string: WGSL ready for CreateShaderModule
//   - []Annotation: the bind group declarations it uses
//   - error: any pre-processing error
func LineShader() (string, []Annotation, error) {
	pp := NewPreProcessor()
	src, err := pp.Process(LineShaderSource)
	if err != nil {
		return "", nil, fmt.Errorf("line shader: %w", err)
	}
	return src, pp.Declarations(), nil
}
