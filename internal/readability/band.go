package readability

// Index names one of the four readability formulas.
type Index string

const (
	IndexFleschReadingEase  Index = "flesch_reading_ease"
	IndexFleschKincaidGrade Index = "flesch_kincaid_grade"
	IndexGunningFog         Index = "gunning_fog"
	IndexSMOG               Index = "smog"
)

// Band is a coarse quality bucket for a single index value.
type Band string

const (
	BandGood         Band = "good"
	BandModerate     Band = "moderate"
	BandPoor         Band = "poor"
	BandInsufficient Band = "insufficient"
)

// BandOf buckets one index score. FRE is better when higher; the grade-level
// indices are better when lower. A SMOG of 0 means the text was too short.
func BandOf(index Index, score float64) Band {
	switch index {
	case IndexFleschReadingEase:
		return higherIsBetter(score, 60, 30)
	case IndexFleschKincaidGrade:
		return lowerIsBetter(score, 8, 12)
	case IndexGunningFog:
		return lowerIsBetter(score, 10, 14)
	case IndexSMOG:
		if score == 0 {
			return BandInsufficient
		}
		return lowerIsBetter(score, 10, 13)
	default:
		return BandInsufficient
	}
}

// Bands buckets every index of r.
func (r Report) Bands() map[Index]Band {
	return map[Index]Band{
		IndexFleschReadingEase:  BandOf(IndexFleschReadingEase, r.FleschReadingEase),
		IndexFleschKincaidGrade: BandOf(IndexFleschKincaidGrade, r.FleschKincaidGrade),
		IndexGunningFog:         BandOf(IndexGunningFog, r.GunningFog),
		IndexSMOG:               BandOf(IndexSMOG, r.SMOG),
	}
}

func higherIsBetter(score, good, moderate float64) Band {
	switch {
	case score >= good:
		return BandGood
	case score >= moderate:
		return BandModerate
	default:
		return BandPoor
	}
}

func lowerIsBetter(score, good, moderate float64) Band {
	switch {
	case score <= good:
		return BandGood
	case score <= moderate:
		return BandModerate
	default:
		return BandPoor
	}
}
