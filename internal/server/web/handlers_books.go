package web

import (
	"net/http"

	"github.com/dmitrijs2005/bookstore/internal/server/forms"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

func (h *handlers) searchForm(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "search.html", "Search", forms.SearchForm{})
}

func (h *handlers) searchResult(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	f, err := forms.ParseSearch(r.PostForm)
	if err != nil {
		h.show(w, r, http.StatusOK, "search.html", "Search", f)
		return
	}

	books, err := h.books.Search(r.Context(), f.Keyword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.show(w, r, http.StatusOK, "books.html", "Search results", booksPage{
		Heading: "Search results for “" + f.Keyword + "”",
		Empty:   "No books match your search.",
		Books:   books,
	})
}

func (h *handlers) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.show(w, r, http.StatusOK, "books.html", "Books", booksPage{
		Heading: "Available books",
		Empty:   "The catalog is empty.",
		Books:   books,
	})
}

func (h *handlers) bargainBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.Bargains(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.show(w, r, http.StatusOK, "books.html", "Bargain books", booksPage{
		Heading: "Bargain books under £" + services.BargainThreshold.String(),
		Empty:   "No bargains right now.",
		Books:   books,
	})
}

func (h *handlers) addBookForm(w http.ResponseWriter, r *http.Request) {
	h.show(w, r, http.StatusOK, "addbook.html", "Add book", forms.BookForm{})
}

func (h *handlers) bookAdded(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	f, err := forms.ParseBook(r.PostForm)
	if err != nil {
		h.show(w, r, http.StatusOK, "addbook.html", "Add book", f)
		return
	}

	book, err := h.books.Add(r.Context(), f.Name, f.PriceValue())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.show(w, r, http.StatusOK, "bookadded.html", "Book added", book)
}
