package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.pathNotFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api", app.getAPIDescription)

	router.HandlerFunc(http.MethodGet, "/api/topics", app.getTopics)

	router.HandlerFunc(http.MethodGet, "/api/users", app.getUsers)
	router.HandlerFunc(http.MethodGet, "/api/users/:username", app.getUserByUsername)
	router.HandlerFunc(http.MethodGet, "/api/users/:username/comments", app.getUserComments)
	router.HandlerFunc(http.MethodGet, "/api/users/:username/validate", app.validateUser)

	router.HandlerFunc(http.MethodGet, "/api/articles", app.getArticles)
	router.HandlerFunc(http.MethodPost, "/api/articles", app.createArticle)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id", app.getArticleByID)
	router.HandlerFunc(http.MethodPatch, "/api/articles/:article_id", app.updateArticleVotes)
	router.HandlerFunc(http.MethodDelete, "/api/articles/:article_id", app.deleteArticle)
	router.HandlerFunc(http.MethodGet, "/api/articles/:article_id/comments", app.getArticleComments)
	router.HandlerFunc(http.MethodPost, "/api/articles/:article_id/comments", app.createComment)

	router.HandlerFunc(http.MethodPatch, "/api/comments/:comment_id", app.updateCommentVotes)
	router.HandlerFunc(http.MethodDelete, "/api/comments/:comment_id", app.deleteComment)

	return app.recoverPanic(router)
}
