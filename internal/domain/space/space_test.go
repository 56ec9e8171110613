package space_test

import (
	"strings"
	"testing"

	"github.com/baxirbajja/CMCEspace-api/internal/domain"
	"github.com/baxirbajja/CMCEspace-api/internal/domain/space"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	sp, err := space.New("Salle de réunion", "Une salle équipée", 20, "", "")
	require.NoError(t, err)

	assert.Equal(t, space.StatusActive, sp.Status())
	assert.Equal(t, space.DefaultImage, sp.Image())
	assert.True(t, sp.IsBookable())
	assert.NotEqual(t, "", sp.ID().String())
}

func TestNew_CollectsEveryFieldError(t *testing.T) {
	_, err := space.New("", "", 0, "", "broken")
	require.Error(t, err)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Messages, "Veuillez ajouter un titre")
	assert.Contains(t, validation.Messages, "Veuillez ajouter une description")
	assert.Contains(t, validation.Messages, "Veuillez spécifier la capacité")
	assert.Contains(t, validation.Messages, "Veuillez fournir un statut valide (active, maintenance)")
}

func TestNew_RejectsOverlongFields(t *testing.T) {
	_, err := space.New(strings.Repeat("t", 51), strings.Repeat("d", 501), 5, "", "")
	require.Error(t, err)

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Messages, "Le titre ne peut pas dépasser 50 caractères")
	assert.Contains(t, validation.Messages, "La description ne peut pas dépasser 500 caractères")
}

func TestApply_PartialPatch(t *testing.T) {
	sp, err := space.New("Amphithéâtre", "Grand amphithéâtre", 100, "", "")
	require.NoError(t, err)

	status := space.StatusMaintenance
	title := "Amphithéâtre A"
	require.NoError(t, sp.Apply(space.Patch{Title: &title, Status: &status}))

	assert.Equal(t, "Amphithéâtre A", sp.Title())
	assert.Equal(t, space.StatusMaintenance, sp.Status())
	assert.Equal(t, 100, sp.Capacity(), "untouched fields keep their value")
	assert.False(t, sp.IsBookable())
}

func TestApply_RejectsInvalidPatch(t *testing.T) {
	sp, err := space.New("Studio", "Studio d'enregistrement", 8, "", "")
	require.NoError(t, err)

	empty := ""
	err = sp.Apply(space.Patch{Title: &empty})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Studio", sp.Title(), "failed patch leaves the space unchanged")
}
