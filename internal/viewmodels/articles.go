package viewmodels

import (
	"context"
	"net/url"
	"strconv"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/store"
	"github.com/astralisweb/astralis-client/internal/types"
)

// CommentWriter is the write surface the articles screen needs.
type CommentWriter interface {
	Create(ctx context.Context, in any) (*types.Comment, error)
}

type ArticlesState struct {
	Loading  bool
	Err      string
	Articles []types.Article
	Selected *types.Article
	Comments []types.Comment
	Paging   Paging
}

type ArticlesViewModel struct {
	log      *logger.Logger
	articles Lister[types.Article]
	comments Lister[types.Comment]
	writer   CommentWriter
	Store    *store.Store[ArticlesState]
}

func NewArticlesViewModel(log *logger.Logger, articles Lister[types.Article], comments Lister[types.Comment], writer CommentWriter) *ArticlesViewModel {
	return &ArticlesViewModel{
		log:      log.With("viewmodel", "Articles"),
		articles: articles,
		comments: comments,
		writer:   writer,
		Store:    store.New(ArticlesState{Paging: Paging{Page: 1, PageSize: DefaultPageSize}}),
	}
}

func (vm *ArticlesViewModel) Load(ctx context.Context) {
	st := vm.Store.Update(func(s ArticlesState) ArticlesState {
		s.Loading = true
		s.Err = ""
		return s
	})

	articles, err := vm.articles.List(ctx, st.Paging.query())
	vm.Store.Update(func(s ArticlesState) ArticlesState {
		s.Loading = false
		if err != nil {
			vm.log.Warn("Article load failed", "error", err)
			s.Err = ErrGenericMessage
			return s
		}
		s.Articles = articles
		return s
	})
}

// Select marks an article current and loads its comments. A comment read
// failure shows the article with an empty thread.
func (vm *ArticlesViewModel) Select(ctx context.Context, article types.Article) {
	vm.Store.Update(func(s ArticlesState) ArticlesState {
		s.Selected = &article
		s.Comments = nil
		return s
	})

	q := url.Values{"articleId": {strconv.FormatInt(article.ID, 10)}}
	comments, err := vm.comments.List(ctx, q)
	if err != nil {
		vm.log.Debug("Comment load failed, showing empty thread", "article_id", article.ID, "error", err)
		return
	}
	vm.Store.Update(func(s ArticlesState) ArticlesState {
		s.Comments = comments
		return s
	})
}

type commentCreate struct {
	ArticleID int64  `json:"article_id"`
	Content   string `json:"content"`
}

func (vm *ArticlesViewModel) SubmitComment(ctx context.Context, content string) {
	st := vm.Store.Get()
	if st.Selected == nil || content == "" {
		return
	}
	if _, err := vm.writer.Create(ctx, commentCreate{ArticleID: st.Selected.ID, Content: content}); err != nil {
		vm.log.Warn("Comment submit failed", "error", err)
		vm.Store.Update(func(s ArticlesState) ArticlesState {
			s.Err = ErrGenericMessage
			return s
		})
		return
	}
	vm.Select(ctx, *st.Selected)
}
