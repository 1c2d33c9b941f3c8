package asmdoc

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/sourcecode"
	"github.com/inlineasm/asmscope/internal/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	CURRENT_VERSION     = "1.0.0"
	SUPPORTED_VERSIONS  = "^1.0.0"
	SCHEMA_URL          = "asmdoc.schema.json"
	DEFAULT_SOURCE_NAME = "<unknown>"
	JSON_FILE_EXTENSION = ".json"
	YAML_FILE_EXTENSION = ".yaml"
	YML_FILE_EXTENSION  = ".yml"
)

var (
	//go:embed schema.json
	SCHEMA_JSON string

	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrUnknownFormat      = errors.New("unknown document format")

	documentSchema    *jsonschema.Schema
	supportedVersions *semver.Constraints
)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	utils.PanicIfErr(compiler.AddResource(SCHEMA_URL, strings.NewReader(SCHEMA_JSON)))
	documentSchema = utils.Must(compiler.Compile(SCHEMA_URL))

	supportedVersions = utils.Must(semver.NewConstraint(SUPPORTED_VERSIONS))
}

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	switch f {
	case JSONFormat:
		return "json"
	case YAMLFormat:
		return "yaml"
	}
	return "?"
}

// FormatFromPath returns the format of a document file based on its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case JSON_FILE_EXTENSION:
		return JSONFormat, nil
	case YAML_FILE_EXTENSION, YML_FILE_EXTENSION:
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// A Document is a serialized AST produced by a parser, along with the source it was parsed from.
type Document struct {
	Version *semver.Version
	Chunk   *sourcecode.Chunk
	Block   *asmast.Block
}

type rawDocument struct {
	Version string          `json:"version"`
	Source  *rawSource      `json:"source,omitempty"`
	Block   json.RawMessage `json:"block"`
}

type rawSource struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Decode validates and decodes a document. YAML documents are converted to JSON first.
func Decode(data []byte, format Format) (*Document, error) {
	if format == YAMLFormat {
		jsonData, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		data = jsonData
	}

	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := documentSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	version, err := semver.NewVersion(raw.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, raw.Version, err)
	}
	if !supportedVersions.Check(version) {
		return nil, fmt.Errorf("%w: %s, supported versions are %s", ErrUnsupportedVersion, version, SUPPORTED_VERSIONS)
	}

	node, err := decodeNode(raw.Block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	chunk := sourcecode.NewChunk(DEFAULT_SOURCE_NAME, "")
	if raw.Source != nil {
		chunk = sourcecode.NewChunk(raw.Source.Name, raw.Source.Code)
	}

	return &Document{
		Version: version,
		Chunk:   chunk,
		Block:   node.(*asmast.Block),
	}, nil
}

// Encode returns the JSON representation of a document, the version is set to the current one if missing.
func Encode(doc *Document) ([]byte, error) {
	version := CURRENT_VERSION
	if doc.Version != nil {
		version = doc.Version.String()
	}

	block, err := encodeNode(doc.Block)
	if err != nil {
		return nil, err
	}

	raw := rawDocument{
		Version: version,
		Block:   block,
	}
	if doc.Chunk != nil {
		raw.Source = &rawSource{Name: doc.Chunk.Name, Code: doc.Chunk.Code}
	}

	return json.Marshal(raw)
}
