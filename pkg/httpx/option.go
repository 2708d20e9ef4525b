package httpx

type Option func(*LoggingRoundTripper)

func WithLogFieldMaxLen(logFieldMaxLen int) Option {
	return func(rt *LoggingRoundTripper) {
		rt.logFieldMaxLen = logFieldMaxLen
	}
}

func WithSensitiveDataMasker(sensitiveDataMasker SensitiveDataMasker) Option {
	return func(rt *LoggingRoundTripper) {
		rt.sensitiveDataMasker = sensitiveDataMasker
	}
}

