package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gobooklend/internal/library/app"
	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
)

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("all authors exist", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		in := &entities.Book{Title: "Dune", ISBN: "9780441172719", AuthorIDs: []string{"A1", "A2"}}
		authors.On("FindByIDs", ctx, []string{"A1", "A2"}).
			Return([]*entities.Author{{ID: "A1"}, {ID: "A2"}}, nil)
		books.On("Create", ctx, in).Return(&entities.Book{ID: "B1", Title: "Dune", AuthorIDs: in.AuthorIDs}, nil)

		got, err := app.NewBookUseCase(books, authors, nil).CreateBook(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "B1", got.ID)
		books.AssertExpectations(t)
	})

	t.Run("unknown author", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		authors.On("FindByIDs", ctx, []string{"A1", "A404"}).Return([]*entities.Author{{ID: "A1"}}, nil)

		_, err := app.NewBookUseCase(books, authors, nil).
			CreateBook(ctx, &entities.Book{Title: "T", AuthorIDs: []string{"A1", "A404"}})

		require.ErrorIs(t, err, entities.ErrAuthorNotFound)
		assert.Contains(t, err.Error(), "A404")
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
		books.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		authors.On("FindByIDs", ctx, []string{"A1"}).Return([]*entities.Author{{ID: "A1"}}, nil)
		books.On("Create", ctx, mock.Anything).Return(nil, entities.ErrBookISBNTaken)

		_, err := app.NewBookUseCase(books, authors, nil).
			CreateBook(ctx, &entities.Book{Title: "T", ISBN: "9780441172719", AuthorIDs: []string{"A1"}})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	title := "Dune Messiah"

	t.Run("authors untouched when not provided", func(t *testing.T) {
		books := new(mockBookRepository)
		books.On("FindByID", ctx, "B1").Return(&entities.Book{ID: "B1", Title: "Dune", AuthorIDs: []string{"A1"}}, nil)
		books.On("Update", ctx, mock.MatchedBy(func(b *entities.Book) bool {
			return b.Title == title && b.AuthorIDs == nil
		})).Return(&entities.Book{ID: "B1", Title: title, AuthorIDs: []string{"A1"}}, nil)

		got, err := app.NewBookUseCase(books, new(mockAuthorRepository), nil).
			UpdateBook(ctx, "B1", entities.BookUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, []string{"A1"}, got.AuthorIDs)
	})

	t.Run("replaces authors", func(t *testing.T) {
		books := new(mockBookRepository)
		authors := new(mockAuthorRepository)
		books.On("FindByID", ctx, "B1").Return(&entities.Book{ID: "B1", AuthorIDs: []string{"A1"}}, nil)
		authors.On("FindByIDs", ctx, []string{"A2"}).Return([]*entities.Author{{ID: "A2"}}, nil)
		books.On("Update", ctx, mock.MatchedBy(func(b *entities.Book) bool {
			return len(b.AuthorIDs) == 1 && b.AuthorIDs[0] == "A2"
		})).Return(&entities.Book{ID: "B1", AuthorIDs: []string{"A2"}}, nil)

		got, err := app.NewBookUseCase(books, authors, nil).
			UpdateBook(ctx, "B1", entities.BookUpdate{AuthorIDs: []string{"A2"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"A2"}, got.AuthorIDs)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	newUseCase := func(books *mockBookRepository, loans *mockLoanRepository) func(context.Context, string) error {
		oracle := app.NewAvailabilityOracle(loans, fixedClock("2024-01-05"))
		return app.NewBookUseCase(books, nil, oracle).DeleteBook
	}

	t.Run("book currently out", func(t *testing.T) {
		books := new(mockBookRepository)
		loans := new(mockLoanRepository)
		books.On("FindByID", ctx, "B1").Return(&entities.Book{ID: "B1"}, nil)
		loans.On("HasOpenLoan", ctx, "B1", day("2024-01-05")).Return(true, nil)

		err := newUseCase(books, loans)(ctx, "B1")
		require.ErrorIs(t, err, entities.ErrBookOnLoan)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		books.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("book returned", func(t *testing.T) {
		books := new(mockBookRepository)
		loans := new(mockLoanRepository)
		books.On("FindByID", ctx, "B1").Return(&entities.Book{ID: "B1"}, nil)
		loans.On("HasOpenLoan", ctx, "B1", day("2024-01-05")).Return(false, nil)
		books.On("Delete", ctx, "B1").Return(nil)

		require.NoError(t, newUseCase(books, loans)(ctx, "B1"))
		books.AssertExpectations(t)
	})

	t.Run("missing book", func(t *testing.T) {
		books := new(mockBookRepository)
		books.On("FindByID", ctx, "B9").Return(nil, entities.ErrBookNotFound)

		err := newUseCase(books, new(mockLoanRepository))(ctx, "B9")
		assert.ErrorIs(t, err, entities.ErrBookNotFound)
	})
}
