package translation

import "horse.fit/textlens/internal/language"

// PairOption lists the targets available for one source language.
type PairOption struct {
	Source  language.Option   `json:"source"`
	Targets []language.Option `json:"targets"`
}

func PairOptions(registry *Registry) []PairOption {
	if registry == nil {
		return []PairOption{}
	}

	sources := language.Options(registry.Sources())
	options := make([]PairOption, 0, len(sources))
	for _, source := range sources {
		options = append(options, PairOption{
			Source:  source,
			Targets: language.Options(registry.Targets(language.Code(source.Code))),
		})
	}
	return options
}
