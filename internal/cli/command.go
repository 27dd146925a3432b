package cli

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/mdtranslate/internal"
	"codeberg.org/snonux/mdtranslate/internal/model"
	"codeberg.org/snonux/mdtranslate/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdtranslate [text...]",
		Short: "Markdown translator powered by chat-completion models",
		Long: `mdtranslate translates Markdown documents with OpenAI or Gemini chat models.

The document is split at its headings and every section is translated on
its own, so long documents fit the model's context. Code blocks, links and
the Markdown structure are kept intact.

Input is taken from the arguments, from standard input when it is piped,
or from the system clipboard.

Examples:
  mdtranslate                                # Translate the clipboard
  cat README.ja.md | mdtranslate             # Translate stdin
  mdtranslate --to German --format html < doc.md > doc.html
  mdtranslate --batch docs.txt --to English  # Translate many files`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.mdtranslate.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Translation flags
	cmd.Flags().StringVarP(&flags.Model, "model", "m", flags.Model, "Model: gpt-4o, gpt-4o-mini, gpt-4-turbo, gpt-3.5-turbo, gemini-2.0-flash, gemini-1.5-pro (substrings like \"4o\" or \"mini\" work)")
	cmd.Flags().Uint16Var(&flags.MaxTokens, "max-tokens", flags.MaxTokens, "Maximum number of tokens to generate per fragment")
	cmd.Flags().Float32Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature (0 to 2)")
	cmd.Flags().Float32Var(&flags.FrequencyPenalty, "frequency-penalty", flags.FrequencyPenalty, "Frequency penalty (-2 to 2)")
	cmd.Flags().StringVarP(&flags.SourceLanguage, "from", "f", flags.SourceLanguage, "Source language")
	cmd.Flags().StringVarP(&flags.TargetLanguage, "to", "t", flags.TargetLanguage, "Target language")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", "", "Override the API endpoint")

	// Prompt flags
	cmd.Flags().StringVar(&flags.SystemPromptFile, "system-prompt-file", "", "File with the system prompt")
	cmd.Flags().StringVar(&flags.UserPromptFile, "user-prompt-file", "", "File with the user prompt ({source} and {target} are replaced)")
	cmd.Flags().StringVar(&flags.SystemPrompt, "system-prompt", "", "System prompt text (overrides --system-prompt-file)")
	cmd.Flags().StringVar(&flags.UserPrompt, "user-prompt", "", "User prompt text (overrides --user-prompt-file)")

	// Output flags
	cmd.Flags().StringVar(&flags.OutputFormat, "format", flags.OutputFormat, "Output format: text or html")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVarP(&flags.Clipboard, "clipboard", "c", false, "Copy the translation to the clipboard")

	// Modes
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate the Markdown files listed in this file (one per line)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI chat models for the current API key")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translate.max_tokens", cmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("translate.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("translate.frequency_penalty", cmd.Flags().Lookup("frequency-penalty"))
	viper.BindPFlag("translate.source", cmd.Flags().Lookup("from"))
	viper.BindPFlag("translate.target", cmd.Flags().Lookup("to"))
	viper.BindPFlag("translate.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("prompt.system_file", cmd.Flags().Lookup("system-prompt-file"))
	viper.BindPFlag("prompt.user_file", cmd.Flags().Lookup("user-prompt-file"))
	viper.BindPFlag("prompt.system", cmd.Flags().Lookup("system-prompt"))
	viper.BindPFlag("prompt.user", cmd.Flags().Lookup("user-prompt"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".mdtranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mdtranslate")
	}

	// Environment variables, e.g. MDTRANSLATE_TRANSLATE_MODEL
	viper.SetEnvPrefix("MDTRANSLATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translate.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("translate.gemini_key")
}

// TranslationConfig assembles the translator configuration. Values come
// from flags when set, then from the config file or environment, then from
// the flag defaults.
func TranslationConfig() (translation.Config, error) {
	m, err := model.Parse(viper.GetString("translate.model"))
	if err != nil {
		return translation.Config{}, err
	}

	maxTokens := viper.GetInt("translate.max_tokens")
	if maxTokens < 0 || maxTokens > math.MaxUint16 {
		return translation.Config{}, &translation.ConfigError{
			Field:  "max tokens",
			Reason: fmt.Sprintf("%d is outside 0..%d", maxTokens, math.MaxUint16),
		}
	}

	cfg := translation.Config{
		Model:            m,
		MaxTokens:        uint16(maxTokens),
		Temperature:      float32(viper.GetFloat64("translate.temperature")),
		FrequencyPenalty: float32(viper.GetFloat64("translate.frequency_penalty")),
		SourceLanguage:   viper.GetString("translate.source"),
		TargetLanguage:   viper.GetString("translate.target"),
		BaseURL:          viper.GetString("translate.base_url"),
		SystemPromptFile: viper.GetString("prompt.system_file"),
		UserPromptFile:   viper.GetString("prompt.user_file"),
		SystemPromptText: viper.GetString("prompt.system"),
		UserPromptText:   viper.GetString("prompt.user"),
	}

	switch m.Provider() {
	case model.ProviderGemini:
		cfg.APIKey = GetGeminiKey()
	default:
		cfg.APIKey = GetOpenAIKey()
	}

	return cfg, nil
}
