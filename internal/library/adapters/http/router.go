package http

import (
	"github.com/gofiber/fiber/v3"

	"gobooklend/internal/library/adapters/http/borrowers"
	"gobooklend/internal/library/adapters/http/catalog"
	"gobooklend/internal/library/adapters/http/loans"
	"gobooklend/internal/library/adapters/http/middleware"
	"gobooklend/internal/library/adapters/http/users"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
)

// UseCases - сценарии, которые обслуживает HTTP API.
type UseCases struct {
	Loans     api.LoanUseCase
	Borrowers api.BorrowerUseCase
	Authors   api.AuthorUseCase
	Books     api.BookUseCase
	Users     api.UserUseCase
	Gate      api.AuthorizationGate
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, uc UseCases) {
	loanHandler := loans.NewHandler(uc.Loans)
	borrowerHandler := borrowers.NewHandler(uc.Borrowers)
	catalogHandler := catalog.NewHandler(uc.Authors, uc.Books)
	userHandler := users.NewHandler(uc.Users, uc.Gate)

	allow := func(op services.Operation) fiber.Handler {
		return middleware.RequireOperation(uc.Gate, op)
	}

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiGroup := app.Group("/api")

	userRoutes := apiGroup.Group("/users")
	userRoutes.Post("/register", userHandler.Register)
	userRoutes.Post("/login", userHandler.Login)
	userRoutes.Post("/logout", userHandler.Logout, allow(services.OpUserLogout))
	userRoutes.Get("/:id", userHandler.Get, allow(services.OpUserGet))
	userRoutes.Put("/:id", userHandler.Update, allow(services.OpUserUpdate))

	// Чтение каталога публичное.
	authorRoutes := apiGroup.Group("/authors")
	authorRoutes.Get("/", catalogHandler.ListAuthors)
	authorRoutes.Get("/:id", catalogHandler.GetAuthor)
	authorRoutes.Post("/", catalogHandler.CreateAuthor, allow(services.OpAuthorCreate))
	authorRoutes.Put("/:id", catalogHandler.UpdateAuthor, allow(services.OpAuthorUpdate))
	authorRoutes.Delete("/:id", catalogHandler.DeleteAuthor, allow(services.OpAuthorDelete))

	bookRoutes := apiGroup.Group("/books")
	bookRoutes.Get("/", catalogHandler.ListBooks)
	bookRoutes.Get("/:id", catalogHandler.GetBook)
	bookRoutes.Post("/", catalogHandler.CreateBook, allow(services.OpBookCreate))
	bookRoutes.Put("/:id", catalogHandler.UpdateBook, allow(services.OpBookUpdate))
	bookRoutes.Delete("/:id", catalogHandler.DeleteBook, allow(services.OpBookDelete))

	borrowerRoutes := apiGroup.Group("/borrowers")
	borrowerRoutes.Get("/", borrowerHandler.List, allow(services.OpBorrowerList))
	borrowerRoutes.Get("/:id", borrowerHandler.Get, allow(services.OpBorrowerGet))
	borrowerRoutes.Post("/", borrowerHandler.Create, allow(services.OpBorrowerCreate))
	borrowerRoutes.Put("/:id", borrowerHandler.Update, allow(services.OpBorrowerUpdate))
	borrowerRoutes.Delete("/:id", borrowerHandler.Delete, allow(services.OpBorrowerDelete))

	loanRoutes := apiGroup.Group("/loans")
	loanRoutes.Get("/", loanHandler.List, allow(services.OpLoanList))
	loanRoutes.Get("/:id", loanHandler.Get, allow(services.OpLoanGet))
	loanRoutes.Post("/", loanHandler.Create, allow(services.OpLoanCreate))
	loanRoutes.Put("/:id", loanHandler.Return, allow(services.OpLoanReturn))

	// Обработчик для несуществующих маршрутов.
	app.Use(func(ctx fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}
