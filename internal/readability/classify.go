package readability

import (
	"math"

	"horse.fit/textlens/internal/language"
)

// Category is an ordinal readability level.
type Category string

const (
	CategoryVeryEasy        Category = "very_easy"
	CategoryEasy            Category = "easy"
	CategoryFairlyEasy      Category = "fairly_easy"
	CategoryStandard        Category = "standard"
	CategoryFairlyDifficult Category = "fairly_difficult"
	CategoryDifficult       Category = "difficult"
	CategoryVeryDifficult   Category = "very_difficult"
	CategoryUnclassified    Category = "unclassified"
)

// categories is ordered from easiest to hardest.
var categories = []Category{
	CategoryVeryEasy,
	CategoryEasy,
	CategoryFairlyEasy,
	CategoryStandard,
	CategoryFairlyDifficult,
	CategoryDifficult,
	CategoryVeryDifficult,
}

// freFloors are the minimum FRE scores of categories[0..5]; anything lower is
// very difficult.
var freFloors = []float64{90, 80, 70, 60, 50, 30}

const (
	hardGradeConsensus = 17.0
	easyGradeConsensus = 5.0
)

// Classify maps the four index values to a category. FRE picks the base level
// and is the only input the ordering depends on: a higher FRE never yields a
// harder category. When the grade-level indices agree that the text is far
// outside the FRE band, the level moves one step. NaN and infinite inputs are
// tolerated.
func Classify(fre, fkgl, fog, smog float64) Category {
	level := len(freFloors)
	if !math.IsNaN(fre) {
		for i, floor := range freFloors {
			if fre >= floor {
				level = i
				break
			}
		}
	}

	if grade, ok := gradeConsensus(fkgl, fog, smog); ok {
		switch {
		case grade > hardGradeConsensus && level < len(categories)-1:
			level++
		case grade < easyGradeConsensus && level > 0:
			level--
		}
	}
	return categories[level]
}

// gradeConsensus averages the finite grade-level indices. SMOG is left out
// when it is 0 (too few sentences to score).
func gradeConsensus(fkgl, fog, smog float64) (float64, bool) {
	var sum float64
	n := 0
	for i, v := range []float64{fkgl, fog, smog} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if i == 2 && v == 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Rank is the 0-based difficulty position of c, or -1 for CategoryUnclassified.
func (c Category) Rank() int {
	for i, candidate := range categories {
		if candidate == c {
			return i
		}
	}
	return -1
}

var categoryLabels = map[language.Code]map[Category]string{
	language.English: {
		CategoryVeryEasy:        "Very easy",
		CategoryEasy:            "Easy",
		CategoryFairlyEasy:      "Fairly easy",
		CategoryStandard:        "Standard",
		CategoryFairlyDifficult: "Fairly difficult",
		CategoryDifficult:       "Difficult",
		CategoryVeryDifficult:   "Very difficult",
		CategoryUnclassified:    "Unclassified",
	},
	language.Russian: {
		CategoryVeryEasy:        "Очень легко",
		CategoryEasy:            "Легко",
		CategoryFairlyEasy:      "Довольно легко",
		CategoryStandard:        "Средне",
		CategoryFairlyDifficult: "Довольно сложно",
		CategoryDifficult:       "Сложно",
		CategoryVeryDifficult:   "Очень сложно",
		CategoryUnclassified:    "Не классифицировано",
	},
	language.Kazakh: {
		CategoryVeryEasy:        "Өте оңай",
		CategoryEasy:            "Оңай",
		CategoryFairlyEasy:      "Біршама оңай",
		CategoryStandard:        "Орташа",
		CategoryFairlyDifficult: "Біршама қиын",
		CategoryDifficult:       "Қиын",
		CategoryVeryDifficult:   "Өте қиын",
		CategoryUnclassified:    "Жіктелмеген",
	},
}

// Label returns the display label of c in lang, falling back to English.
func (c Category) Label(lang language.Code) string {
	labels, ok := categoryLabels[lang]
	if !ok {
		labels = categoryLabels[language.English]
	}
	if label, ok := labels[c]; ok {
		return label
	}
	return string(c)
}
