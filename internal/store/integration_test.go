//go:build integration

package store_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"recipeshare/internal/apperr"
	"recipeshare/internal/config"
	"recipeshare/internal/db"
	"recipeshare/internal/models"
	"recipeshare/internal/query"
	"recipeshare/internal/store"
)

func setupStore(t *testing.T) *store.GormStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("recipes"),
		postgres.WithUsername("recipes"),
		postgres.WithPassword("recipes"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.Open(config.DatabaseConfig{URL: connStr, MaxOpenConns: 10, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	return store.NewGormStore(gdb)
}

func TestGormStoreIntegration(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	chef := &models.User{Username: "chef", Email: "chef@example.com", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, chef))

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		err := s.CreateUser(ctx, &models.User{Username: "other", Email: "chef@example.com", Password: "hash"})
		assert.True(t, apperr.Is(err, apperr.KindConflict))
	})

	for i := 0; i < 25; i++ {
		title := "Bread"
		ingredients := []string{"flour", "water"}
		if i == 24 {
			title = "Stew"
			ingredients = []string{"Smoked Paprika", "beef"}
		}
		require.NoError(t, s.CreateRecipe(ctx, &models.Recipe{
			Title: title, Ingredients: ingredients, Steps: []string{"mix"},
			PreparationTime: 10 + i, AuthorID: chef.ID,
		}))
	}

	t.Run("pagination", func(t *testing.T) {
		page3, total, err := s.SearchRecipes(ctx, query.RecipeFilter{}, query.Page{Number: 3, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		assert.Len(t, page3, 5)
		assert.Equal(t, "chef", page3[0].Author.Username)

		huge, total, err := s.SearchRecipes(ctx, query.RecipeFilter{}, query.Page{Number: math.MaxInt / 2, Limit: query.MaxLimit})
		require.NoError(t, err)
		assert.EqualValues(t, 25, total)
		assert.Empty(t, huge)
	})

	t.Run("ingredient search", func(t *testing.T) {
		found, total, err := s.SearchRecipes(ctx, query.RecipeFilter{Search: "paprika"}, query.Page{Number: 1, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, found, 1)
		assert.Equal(t, "Stew", found[0].Title)
	})

	t.Run("concurrent ratings serialize", func(t *testing.T) {
		recipe, err := s.FindRecipe(ctx, 1)
		require.NoError(t, err)

		var raters []*models.User
		for i := 0; i < 8; i++ {
			u := &models.User{Username: "rater" + string(rune('a'+i)), Email: string(rune('a'+i)) + "@example.com", Password: "hash"}
			require.NoError(t, s.CreateUser(ctx, u))
			raters = append(raters, u)
		}

		var wg sync.WaitGroup
		for i, u := range raters {
			wg.Add(1)
			go func(userID uint, value int) {
				defer wg.Done()
				err := s.WithRecipeLock(ctx, recipe.ID, func(tx store.RatingTx) error {
					if err := tx.CreateRating(&models.Rating{RecipeID: recipe.ID, UserID: userID, Value: value}); err != nil {
						return err
					}
					values, err := tx.RatingValues(recipe.ID)
					if err != nil {
						return err
					}
					sum := 0
					for _, v := range values {
						sum += v
					}
					return tx.SetAverageRating(recipe.ID, float64(sum)/float64(len(values)))
				})
				assert.NoError(t, err)
			}(u.ID, i%5+1)
		}
		wg.Wait()

		got, err := s.FindRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		require.Len(t, got.Ratings, 8)
		sum := 0
		for _, r := range got.Ratings {
			sum += r.Value
		}
		assert.InDelta(t, float64(sum)/8, got.AverageRating, 1e-9)
	})

	t.Run("comments and cascade delete", func(t *testing.T) {
		c := &models.Comment{RecipeID: 2, AuthorID: chef.ID, Content: "nice"}
		require.NoError(t, s.CreateComment(ctx, c))
		assert.Equal(t, "chef", c.Author.Username)

		err := s.CreateComment(ctx, &models.Comment{RecipeID: 9999, AuthorID: chef.ID, Content: "x"})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))

		require.NoError(t, s.DeleteRecipe(ctx, 2))
		comments, err := s.ListComments(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
