package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	BatchFile  string
	ListModels bool
	Verbose    bool

	// Translation flags
	Model            string
	MaxTokens        uint16
	Temperature      float32
	FrequencyPenalty float32
	SourceLanguage   string
	TargetLanguage   string
	BaseURL          string

	// Prompt overrides
	SystemPromptFile string
	UserPromptFile   string
	SystemPrompt     string
	UserPrompt       string

	// Output flags
	OutputFormat string
	OutputFile   string
	Clipboard    bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Model:            "gpt-4o",
		MaxTokens:        2000,
		Temperature:      0.6,
		FrequencyPenalty: 1.0,
		SourceLanguage:   "Japanese",
		TargetLanguage:   "English",
		OutputFormat:     "text",
	}
}
