package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Config carries the extraction heuristics. The phrase list, markers, and
// unit-code prefix are tuning data rather than constants so they can be
// adjusted per report source without touching the parser.
type Config struct {
	// UnitCodePrefix is the fixed prefix of business-unit codes; the full
	// code is the prefix plus a run of uppercase letters and digits.
	UnitCodePrefix string `json:"unit_code_prefix"`
	// CommentMarker is the literal section header that introduces the
	// free-text customer comment.
	CommentMarker string `json:"comment_marker"`
	// FeedbackMarker is the literal section header that introduces the unit
	// leader's response, optionally followed by a number and a colon.
	FeedbackMarker string `json:"feedback_marker"`
	// MinBlockLength rejects header/footer fragments shorter than this.
	MinBlockLength int `json:"min_block_length"`
	// IgnoredPhrases mark a comment as boilerplate "no real feedback";
	// matching is case-insensitive containment.
	IgnoredPhrases []string `json:"ignored_phrases"`
	// Workers bounds parallel block parsing. Zero means a small default.
	Workers int `json:"workers"`
}

// DefaultConfig returns the production heuristics for the satisfaction
// survey reports this engine was built against.
func DefaultConfig() Config {
	return Config{
		UnitCodePrefix: "SBRSP",
		CommentMarker:  "Comment",
		FeedbackMarker: "Feedback",
		MinBlockLength: 50,
		IgnoredPhrases: []string{
			"sem contato",
			"não autorizou",
			"cliente não comentou",
			"não deixou comentário",
			"contato realizado",
			"no contact",
			"no comment",
			"did not authorize",
		},
		Workers: 4,
	}
}

const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"unit_code_prefix": {"type": "string", "minLength": 1},
		"comment_marker": {"type": "string", "minLength": 1},
		"feedback_marker": {"type": "string", "minLength": 1},
		"min_block_length": {"type": "integer", "minimum": 1},
		"ignored_phrases": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"workers": {"type": "integer", "minimum": 1, "maximum": 64}
	}
}`

// LoadConfig reads a JSON tuning file, validates it against the embedded
// schema, and overlays it on the defaults. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := validateConfigJSON(raw); err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("decode engine config: %w", err)
	}
	return cfg, nil
}

func validateConfigJSON(raw []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("engine-config.json", strings.NewReader(configSchema)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("engine-config.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode engine config: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("engine config does not match schema: %w", err)
	}
	return nil
}
