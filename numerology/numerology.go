// Package numerology derives the classical numerological numbers from
// calendar dates: the life path of a birth date and the personal
// year/month/day cycle a target date falls in, plus the universal day
// number shared by everyone on a given date.
package numerology

import "time"

// IsMaster reports whether n is one of the master numbers, which are
// never reduced further.
func IsMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce sums the decimal digits of n repeatedly until the value is a
// single digit or a master number. Negative input is treated by its
// absolute value.
func Reduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LifePath computes the life path number of a birth date: month, day and
// year are each reduced on their own, then their sum is reduced. Master
// numbers survive at every stage, so a November birth or a 29th keeps
// its 11.
func LifePath(birth time.Time) int {
	year, month, day := birth.Date()
	return Reduce(Reduce(int(month)) + Reduce(day) + Reduce(year))
}

// PersonalYear is the year-long cycle number for the target date's year:
// the birth month and day combined with the target year.
func PersonalYear(birth, target time.Time) int {
	_, month, day := birth.Date()
	return Reduce(Reduce(int(month)) + Reduce(day) + Reduce(target.Year()))
}

// PersonalMonth folds the target month into the personal year.
func PersonalMonth(birth, target time.Time) int {
	return Reduce(PersonalYear(birth, target) + int(target.Month()))
}

// PersonalDay folds the target day into the personal month.
func PersonalDay(birth, target time.Time) int {
	return Reduce(PersonalMonth(birth, target) + target.Day())
}

// UniversalDay reduces the full digits of the target date itself; it is
// the same for every profile.
func UniversalDay(target time.Time) int {
	year, month, day := target.Date()
	return Reduce(digitSum(year) + digitSum(int(month)) + digitSum(day))
}

// Reading bundles every number for one profile and date.
type Reading struct {
	LifePath      int
	PersonalYear  int
	PersonalMonth int
	PersonalDay   int
	UniversalDay  int
}

// ForDay computes the full reading for a birth date and target date.
func ForDay(birth, target time.Time) Reading {
	return Reading{
		LifePath:      LifePath(birth),
		PersonalYear:  PersonalYear(birth, target),
		PersonalMonth: PersonalMonth(birth, target),
		PersonalDay:   PersonalDay(birth, target),
		UniversalDay:  UniversalDay(target),
	}
}

// dayMeanings gives the one-line interpretation of each personal day
// number, including the master numbers.
var dayMeanings = map[int]string{
	1:  "new beginnings and bold starts",
	2:  "cooperation, patience, and quiet diplomacy",
	3:  "expression, creativity, and lightness",
	4:  "steady work and solid foundations",
	5:  "change, movement, and the unexpected",
	6:  "care, responsibility, and harmony at home",
	7:  "reflection, study, and time alone",
	8:  "ambition, material matters, and follow-through",
	9:  "completion, release, and generosity",
	11: "heightened intuition and inspiration",
	22: "building something that outlasts the day",
	33: "teaching and compassionate service",
}

// DayMeaning returns the interpretation of a personal day number, or an
// empty string for values outside the system.
func DayMeaning(n int) string {
	return dayMeanings[n]
}
