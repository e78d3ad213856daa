package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasNineCourses(t *testing.T) {
	assert.Len(t, Courses(), 9)
}

func TestFindByTitle(t *testing.T) {
	course, ok := FindByTitle("Advanced Art Mastery")
	require.True(t, ok)
	assert.Equal(t, "₹10,000", course.Fee)
	assert.Equal(t, "प्रख्यात कलाकार", course.LocalizedName)

	_, ok = FindByTitle("Nonexistent Course")
	assert.False(t, ok)
}

func TestFeeAmount(t *testing.T) {
	cases := map[string]int64{
		"Little Artists Program":  2500,
		"Intermediate Art Studio": 5500,
		"Advanced Art Mastery":    10000,
	}
	for title, want := range cases {
		course, ok := FindByTitle(title)
		require.True(t, ok, title)
		assert.Equal(t, want, course.FeeAmount(), title)
	}
}

func TestSnapshotCopiesEveryField(t *testing.T) {
	course, ok := FindByTitle("Young Creators Workshop")
	require.True(t, ok)

	info := course.Snapshot()
	assert.Equal(t, course.Title, info.Title)
	assert.Equal(t, course.Level, info.Level)
	assert.Equal(t, course.LocalizedName, info.LocalizedName)
	assert.Equal(t, course.Fee, info.Fee)
	assert.Equal(t, course.Duration, info.Duration)
	assert.Equal(t, course.Sessions, info.SessionCount)
	assert.Equal(t, course.Technique, info.Technique)
}

func TestIsValidRejectsTamperedFee(t *testing.T) {
	course, ok := FindByTitle("Little Artists Program")
	require.True(t, ok)
	assert.True(t, course.IsValid())

	course.Fee = "₹1"
	assert.False(t, course.IsValid(), "a fee differing from the catalog must invalidate the course")
}

func TestCoursesReturnsCopy(t *testing.T) {
	list := Courses()
	list[0].Fee = "₹0"

	fresh, ok := FindByTitle(list[0].Title)
	require.True(t, ok)
	assert.NotEqual(t, "₹0", fresh.Fee)
}
