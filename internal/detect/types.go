package detect

// Type is the inferred language/ecosystem tag for a project directory.
type Type string

// The closed set of supported project types.
const (
	TypeC            Type = "c"
	TypeCPP          Type = "cpp"
	TypeGo           Type = "go"
	TypeRust         Type = "rust"
	TypeNode         Type = "nodejs"
	TypePython       Type = "python"
	TypeStaticWeb    Type = "web-static"
	TypeWebFramework Type = "web-framework"
	TypeDocker       Type = "docker"
)

// Descriptor carries the static facts about a project type: a display name,
// the source extensions that belong to it, and whether it is executed through
// a runtime rather than compiled to a binary. Defined once, never mutated.
type Descriptor struct {
	Name        string
	Extensions  []string
	Interpreted bool
}

// Descriptors maps every supported type to its descriptor.
var Descriptors = map[Type]Descriptor{
	TypeC:            {Name: "C", Extensions: []string{".c"}},
	TypeCPP:          {Name: "C++", Extensions: []string{".cpp", ".cc", ".cxx"}},
	TypeGo:           {Name: "Go", Extensions: []string{".go"}},
	TypeRust:         {Name: "Rust", Extensions: []string{".rs"}},
	TypeNode:         {Name: "Node.js", Extensions: []string{".js", ".mjs", ".ts"}, Interpreted: true},
	TypePython:       {Name: "Python", Extensions: []string{".py"}, Interpreted: true},
	TypeStaticWeb:    {Name: "static web", Extensions: []string{".html", ".htm"}, Interpreted: true},
	TypeWebFramework: {Name: "web framework", Extensions: []string{".jsx", ".tsx"}, Interpreted: true},
	TypeDocker:       {Name: "Docker", Interpreted: true},
}

// DescriptorFor returns the descriptor for t. Unknown types yield a zero
// descriptor; callers only pass values produced by Detect.
func DescriptorFor(t Type) Descriptor {
	return Descriptors[t]
}
