// Package catalog holds the caretaker task categories and their task names.
package catalog

import "strings"

// Category names used by the built-in catalog and the report tables.
const (
	DailyWinter  = "Daily (Winter)"
	DailyAllYear = "Daily (All-Year)"
	Weekly       = "Weekly"
	Monthly      = "Monthly"
	TwiceYearly  = "Twice-Yearly"
)

// Category is a named, ordered list of task names.
type Category struct {
	Name  string   `json:"name"`
	Tasks []string `json:"tasks"`
}

// Catalog is the ordered set of categories plus a task → category index
// built once at construction.
type Catalog struct {
	categories []Category
	byTask     map[string]string
}

// Default returns the built-in caretaker catalog.
func Default() *Catalog {
	return New([]Category{
		{Name: DailyWinter, Tasks: []string{
			"Snow removal",
			"Application of salt",
		}},
		{Name: DailyAllYear, Tasks: []string{
			"Tidying of lobby, laundry, ski room",
			"Emptying (4) Waste cans",
			"Wiping down bathroom fixtures, floor",
			"Building Walk-thru and spot clean",
		}},
		{Name: Weekly, Tasks: []string{
			"Vacuum hallways, stairs, elevators",
			"Spot clean spills on carpets",
			"Clean Laundry room floor",
			"Clean dryers and lint traps",
			"Vacuum games room floor",
			"Wipe down laundry machines",
			"Clean windows and mirrors",
		}},
		{Name: Monthly, Tasks: []string{
			"Refresh Pest Control traps",
			"Clean carpets in high traffic areas",
			"Dust horizontal surfaces",
			"Keep light fixtures, vents, walls clean",
		}},
		{Name: TwiceYearly, Tasks: []string{
			"Clean under/behind laundry machines",
			"Clean all carpets",
			"Do outdoor clean up around grounds",
			"Clean Ice Machine",
			"Paint touch ups on doors and w",
		}},
	})
}

// New builds a Catalog from categories. When a task name appears in more than
// one category, the first category wins the reverse lookup.
func New(categories []Category) *Catalog {
	c := &Catalog{
		categories: make([]Category, len(categories)),
		byTask:     make(map[string]string),
	}
	for i, cat := range categories {
		c.categories[i] = Category{Name: cat.Name, Tasks: append([]string(nil), cat.Tasks...)}
		for _, task := range cat.Tasks {
			if _, seen := c.byTask[task]; !seen {
				c.byTask[task] = cat.Name
			}
		}
	}
	return c
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Tasks returns the tasks of the named category, or nil.
func (c *Catalog) Tasks(category string) []string {
	for _, cat := range c.categories {
		if cat.Name == category {
			return append([]string(nil), cat.Tasks...)
		}
	}
	return nil
}

// CategoryOf returns the category a task belongs to.
func (c *Catalog) CategoryOf(task string) (string, bool) {
	name, ok := c.byTask[task]
	return name, ok
}

// DailyTasks returns the winter and all-year daily tasks, in that order.
func (c *Catalog) DailyTasks() []string {
	return append(c.Tasks(DailyWinter), c.Tasks(DailyAllYear)...)
}

// WeeklyTasks returns the weekly tasks.
func (c *Catalog) WeeklyTasks() []string {
	return c.Tasks(Weekly)
}

// PeriodicTasks returns the monthly and twice-yearly tasks, in that order.
func (c *Catalog) PeriodicTasks() []string {
	return append(c.Tasks(Monthly), c.Tasks(TwiceYearly)...)
}

// Options lists every task in entry-form order: all-year dailies first, then
// winter dailies and the remaining categories as declared.
func (c *Catalog) Options() []string {
	var out []string
	out = append(out, c.Tasks(DailyAllYear)...)
	out = append(out, c.Tasks(DailyWinter)...)
	for _, cat := range c.categories {
		if cat.Name == DailyAllYear || cat.Name == DailyWinter {
			continue
		}
		out = append(out, cat.Tasks...)
	}
	return out
}

// IsDaily reports whether category is one of the daily categories.
func IsDaily(category string) bool {
	return strings.HasPrefix(category, "Daily")
}
