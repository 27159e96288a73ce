// Package catalog holds the static reference data of the front end:
// the caregiver skill labels and the education course catalog.
package catalog

import (
	"github.com/gosimple/slug"
)

// Skills are the labels a caregiver can pick on their profile.
var Skills = []string{
	"Personal Care",
	"Meal Preparation",
	"Medication Management",
	"Mobility Assistance",
	"Companionship",
	"Light Housekeeping",
	"Transportation",
	"Dementia Care",
	"Physical Therapy Support",
	"First Aid/CPR",
}

type Course struct {
	ID          int
	Slug        string
	Title       string
	Skill       string
	Duration    string
	Lessons     int
	Description string
}

var courses = []Course{
	{ID: 1, Title: "Personal Care Fundamentals", Skill: "Personal Care", Duration: "2h", Lessons: 5,
		Description: "Best practices for helping older adults with hygiene and daily care."},
	{ID: 2, Title: "Nutrition and Meal Preparation for Seniors", Skill: "Meal Preparation", Duration: "3h", Lessons: 8,
		Description: "How to prepare nutritious meals adapted to the dietary needs common in later life."},
	{ID: 3, Title: "Safe Medication Management", Skill: "Medication Management", Duration: "1.5h", Lessons: 4,
		Description: "Safety protocols, schedules and how to avoid common medication mistakes."},
	{ID: 4, Title: "Transfer and Mobility Techniques", Skill: "Mobility Assistance", Duration: "4h", Lessons: 10,
		Description: "How to help with movement and transfers safely for both the senior and the caregiver."},
	{ID: 5, Title: "Communication and Companionship", Skill: "Companionship", Duration: "2h", Lessons: 6,
		Description: "Active listening skills and recreational activities for mental well-being."},
	{ID: 6, Title: "Specialized Dementia and Alzheimer's Care", Skill: "Dementia Care", Duration: "6h", Lessons: 15,
		Description: "Advanced strategies for challenging behaviours and preserving quality of life."},
	{ID: 7, Title: "First Aid for Seniors", Skill: "First Aid/CPR", Duration: "5h", Lessons: 12,
		Description: "Certified first aid course focused on emergencies common in later life."},
}

func init() {
	for i := range courses {
		courses[i].Slug = slug.Make(courses[i].Title)
	}
}

// Courses returns a copy of the catalog in display order.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

// CourseBySlug looks a course up by its URL slug.
func CourseBySlug(s string) (Course, bool) {
	for _, c := range courses {
		if c.Slug == s {
			return c, true
		}
	}
	return Course{}, false
}

// CoursesForSkills returns the courses teaching a skill the caregiver has not listed yet.
func CoursesForSkills(have []string) []Course {
	owned := make(map[string]bool, len(have))
	for _, s := range have {
		owned[s] = true
	}

	var out []Course
	for _, c := range courses {
		if !owned[c.Skill] {
			out = append(out, c)
		}
	}
	return out
}

func IsSkill(s string) bool {
	for _, k := range Skills {
		if k == s {
			return true
		}
	}
	return false
}
