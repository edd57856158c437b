package community

import (
	"context"
	"errors"
	"strings"

	"pawcare-web/internal/domain/notify"
	"pawcare-web/internal/domain/session"
	"pawcare-web/internal/platform/httpclient"
	"pawcare-web/internal/view"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	EmptyPosts        = "No community posts yet. Be the first to share!"
	ConfirmDeletePost = "Delete this post?"
)

const listKey = "community"

type Service struct {
	repo Repository
	bus  *notify.Bus
}

func NewService(repo Repository, bus *notify.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// List es público: un 401 se trata como cualquier otro error.
func (s *Service) List(ctx context.Context, st *session.State) {
	ctx, tk := st.Begin(ctx, listKey)
	defer tk.Done()

	items, err := s.repo.ListPosts(ctx, st)
	if !tk.Current() {
		return
	}
	if err != nil {
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to load community posts"))
		return
	}

	me := ""
	if id, ok := st.Identity(); ok {
		me = id.Username
	}

	cards := make([]view.PostCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, view.PostCard{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			PostType:  p.PostType,
			Author:    p.Author,
			CreatedAt: displayDate(p.CreatedAt),
			Own:       me != "" && p.Author == me,
		})
	}
	st.Mutate(func(pg *view.Page) {
		pg.Posts = view.PostList{Loaded: true, Empty: EmptyPosts, Cards: cards}
	})
}

func (s *Service) OpenForm(st *session.State) {
	st.Mutate(func(p *view.Page) {
		p.PostModal = view.PostModal{Open: true, Form: view.PostForm{PostType: DefaultPostType}}
	})
}

// Create exige título y contenido; sin tipo se publica como experience.
func (s *Service) Create(ctx context.Context, st *session.State, form view.PostForm) error {
	in := CreateInput{
		Title:    strings.TrimSpace(form.Title),
		Content:  strings.TrimSpace(form.Content),
		PostType: strings.TrimSpace(form.PostType),
	}
	if in.PostType == "" {
		in.PostType = DefaultPostType
	}
	form.PostType = in.PostType
	st.Mutate(func(p *view.Page) { p.PostModal = view.PostModal{Open: true, Form: form} })

	if in.Title == "" || in.Content == "" {
		s.modalError(st, "Title and content are required")
		return ErrInvalidInput
	}

	if _, err := s.repo.CreatePost(ctx, st, in); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.modalError(st, httpclient.MessageOr(err, "Failed to create post. Please try again."))
		return err
	}

	st.Mutate(func(p *view.Page) { p.PostModal = view.PostModal{} })
	s.bus.Success(st, "Post shared with the community!")
	s.List(ctx, st)
	return nil
}

// Delete pide confirmación; el backend solo deja borrar posts propios.
func (s *Service) Delete(ctx context.Context, st *session.State, id int64, confirm session.Confirm) error {
	if confirm == nil || !confirm(ConfirmDeletePost) {
		return nil
	}

	if err := s.repo.DeletePost(ctx, st, id); err != nil {
		if httpclient.IsUnauthorized(err) {
			s.expired(st)
			return err
		}
		s.bus.Error(st, httpclient.MessageOr(err, "Failed to delete post"))
		return err
	}

	s.bus.Success(st, "Post deleted")
	s.List(ctx, st)
	return nil
}

func (s *Service) expired(st *session.State) {
	st.Expire()
	st.Mutate(func(p *view.Page) {
		p.Redirect = &view.Redirect{URL: view.PageIndex.Path(), After: session.RedirectDelay}
	})
	s.bus.Error(st, "Session expired. Please log in again.")
}

func (s *Service) modalError(st *session.State, msg string) {
	st.Mutate(func(p *view.Page) { p.PostModal.Error = msg })
}
