package config

const (
	defaultInboxDir        = "~/inbox/sellside"
	defaultStoreDir        = "~/.local/share/sellsight/reports"
	defaultWorkDir         = "~/.local/share/sellsight/work"
	defaultFinalDir        = "~/.local/share/sellsight/final"
	defaultLogDir          = "~/.local/share/sellsight/logs"
	defaultLLMBaseURL      = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel        = "google/gemini-3-flash-preview"
	defaultLLMTimeout      = 120
	defaultConverterBinary = "markitdown"
	defaultConverterTime   = 300
	defaultWorkers         = 10
	defaultDateWindowDays  = 14
	defaultSummaryMinChars = 10
	defaultLinkBaseURL     = "https://auto.bda-news.com"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InboxDir: defaultInboxDir,
			StoreDir: defaultStoreDir,
			WorkDir:  defaultWorkDir,
			FinalDir: defaultFinalDir,
			LogDir:   defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Translation: Translation{
			Enabled: true,
		},
		Converter: Converter{
			Binary:         defaultConverterBinary,
			TimeoutSeconds: defaultConverterTime,
		},
		Pipeline: Pipeline{
			Workers:         defaultWorkers,
			DateWindowDays:  defaultDateWindowDays,
			SummaryMinChars: defaultSummaryMinChars,
			LinkBaseURL:     defaultLinkBaseURL,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
