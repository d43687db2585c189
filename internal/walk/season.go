package walk

import "time"

type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
	Winter Season = "winter"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// SeasonOf buckets a month: 3-5 spring, 6-8 summer, 9-11 autumn, else winter.
func SeasonOf(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return Spring
	case m >= time.June && m <= time.August:
		return Summer
	case m >= time.September && m <= time.November:
		return Autumn
	default:
		return Winter
	}
}

// TimeOfDayOf buckets an hour: [5,12) morning, [12,17) afternoon,
// [17,21) evening, else night.
func TimeOfDayOf(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// Label is the wording used in generation prompts.
func (s Season) Label() string {
	switch s {
	case Spring:
		return "春"
	case Summer:
		return "夏"
	case Autumn:
		return "秋"
	case Winter:
		return "冬"
	}
	return string(s)
}

func (t TimeOfDay) Label() string {
	switch t {
	case Morning:
		return "朝"
	case Afternoon:
		return "午後"
	case Evening:
		return "夕方"
	case Night:
		return "夜"
	}
	return string(t)
}
