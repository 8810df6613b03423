package main

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

func (app *application) getArticles(w http.ResponseWriter, r *http.Request) {
	articles, total, metadata, err := app.core.GetArticles(r.Context(), queryMap(r.URL.Query()))
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"articles":      articles,
		"article_count": total,
	}
	addPageMetadata(response, metadata)

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticle(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := app.readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), payload)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticleByID(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	article, err := app.core.GetArticleByID(r.Context(), params.ByName("article_id"))
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	var payload map[string]any
	if err := app.readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	article, err := app.core.UpdateArticleVotes(r.Context(), params.ByName("article_id"), payload)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	if err := app.core.DeleteArticle(r.Context(), params.ByName("article_id")); err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) getArticleComments(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	articleID := params.ByName("article_id")

	comments, total, metadata, err := app.core.GetCommentsByArticle(r.Context(), articleID, queryMap(r.URL.Query()))
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	// The id is numeric by the time the core pipeline has accepted it.
	id, _ := strconv.ParseInt(articleID, 10, 64)
	response := envelope{
		"article_id":    id,
		"comment_count": total,
		"comments":      comments,
	}
	addPageMetadata(response, metadata)

	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())

	var payload map[string]any
	if err := app.readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	comment, err := app.core.CreateComment(r.Context(), params.ByName("article_id"), payload)
	if err != nil {
		app.clientErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
