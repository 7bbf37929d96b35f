package listview

import (
	"errors"
	"testing"

	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []ProjectItem {
	return ProjectItems([]models.Project{
		{ID: "1", Title: "Portfolio Site", Description: "Next.js and Go", Type: models.ProjectTypePersonal, Status: models.ProjectStatusCompleted},
		{ID: "2", Title: "Billing API", Description: "Client work in Go", Type: models.ProjectTypeProfessional, Status: models.ProjectStatusInProgress},
		{ID: "3", Title: "Garden Sensor", Description: "Rust firmware", Type: models.ProjectTypePersonal, Status: models.ProjectStatusOnHold},
	})
}

func ids(items []ProjectItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func loadedPage(t *testing.T) Page[ProjectItem] {
	t.Helper()
	p := Reduce(Page[ProjectItem]{}, Load{})
	require.Equal(t, Loading, p.Phase)
	p = Reduce(p, LoadedItems[ProjectItem]{Items: sampleProjects()})
	require.Equal(t, Loaded, p.Phase)
	return p
}

func TestLoadLifecycle(t *testing.T) {
	var p Page[ProjectItem]
	assert.Equal(t, Idle, p.Phase)
	assert.False(t, p.Empty())

	p = loadedPage(t)
	assert.Equal(t, []string{"1", "2", "3"}, ids(p.Filtered))
	assert.False(t, p.Empty())

	boom := errors.New("unauthorized")
	failed := Reduce(Reduce(p, Load{}), LoadFailed{Err: boom})
	assert.Equal(t, Failed, failed.Phase)
	assert.Equal(t, boom, failed.Err)
	assert.Len(t, failed.Items, 3, "previous rows are kept")

	empty := Reduce(Page[ProjectItem]{}, LoadedItems[ProjectItem]{})
	assert.True(t, empty.Empty())
}

func TestSearchIsCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	p := loadedPage(t)

	p = Reduce(p, SetSearch{Text: "GO"})
	assert.Equal(t, []string{"1", "2"}, ids(p.Filtered))

	p = Reduce(p, SetSearch{Text: "garden"})
	assert.Equal(t, []string{"3"}, ids(p.Filtered))

	p = Reduce(p, SetSearch{Text: "nothing matches"})
	assert.True(t, p.Empty())

	p = Reduce(p, SetSearch{Text: ""})
	assert.Len(t, p.Filtered, 3)
}

func TestFilters(t *testing.T) {
	p := loadedPage(t)

	p = Reduce(p, SetFilter{Key: FilterType, Value: "personal"})
	assert.Equal(t, []string{"1", "3"}, ids(p.Filtered))

	p = Reduce(p, SetFilter{Key: FilterStatus, Value: string(models.ProjectStatusOnHold)})
	assert.Equal(t, []string{"3"}, ids(p.Filtered))

	p = Reduce(p, SetSearch{Text: "portfolio"})
	assert.True(t, p.Empty())

	p = Reduce(p, SetFilter{Key: FilterStatus, Value: FilterAll})
	assert.Equal(t, []string{"1"}, ids(p.Filtered))

	p = Reduce(p, SetFilter{Key: FilterType, Value: ""})
	assert.Equal(t, []string{"1"}, ids(p.Filtered))
	assert.Empty(t, p.Filters)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(loadedPage(t), SetFilter{Key: FilterType, Value: "PERSONAL"})
	after := Reduce(before, SetFilter{Key: FilterType, Value: "PROFESSIONAL"})

	assert.Equal(t, "PERSONAL", before.Filters[FilterType])
	assert.Equal(t, "PROFESSIONAL", after.Filters[FilterType])

	deleted := Reduce(before, DeleteConfirmed{ID: "1"})
	assert.Len(t, before.Items, 3)
	assert.Len(t, deleted.Items, 2)
}

func TestDeleteConfirmedRemovesRow(t *testing.T) {
	p := Reduce(loadedPage(t), SetFilter{Key: FilterType, Value: "PERSONAL"})

	p = Reduce(p, DeleteConfirmed{ID: "3"})
	assert.Equal(t, []string{"1", "2"}, ids(p.Items))
	assert.Equal(t, []string{"1"}, ids(p.Filtered))

	unchanged := Reduce(p, DeleteConfirmed{ID: "missing"})
	assert.Equal(t, ids(p.Items), ids(unchanged.Items))
}

func TestBlogStatusFilter(t *testing.T) {
	blogs := BlogItems([]models.Blog{
		{ID: "a", Title: "Shipping Go", Content: "about deploys", Published: true},
		{ID: "b", Title: "Notes", Content: "draft about GO generics", Published: false},
	})
	p := Reduce(Page[BlogItem]{}, LoadedItems[BlogItem]{Items: blogs})

	published := Reduce(p, SetFilter{Key: FilterStatus, Value: StatusPublished})
	require.Len(t, published.Filtered, 1)
	assert.Equal(t, "a", published.Filtered[0].ID)

	drafts := Reduce(p, SetFilter{Key: FilterStatus, Value: StatusDraft})
	require.Len(t, drafts.Filtered, 1)
	assert.Equal(t, "b", drafts.Filtered[0].ID)

	searched := Reduce(p, SetSearch{Text: "generics"})
	require.Len(t, searched.Filtered, 1)
	assert.Equal(t, "b", searched.Filtered[0].ID)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
