package service

import (
	"context"
	"fmt"
	"time"

	"blog-admin-be/internal/dto"
	"blog-admin-be/internal/entity"
	"blog-admin-be/internal/pkg/logger"
	"blog-admin-be/internal/repository/contract"
	"blog-admin-be/internal/repository/specification"
	"blog-admin-be/internal/repository/unitofwork"
	"blog-admin-be/pkg/richtext"

	"github.com/google/uuid"
)

const editorModule = "EDITOR"

type IEditorService interface {
	Open(ctx context.Context, actor entity.Actor, req *dto.OpenEditorSessionRequest) (*dto.EditorSessionResponse, error)
	Get(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) (*dto.EditorSessionResponse, error)
	Select(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, req *dto.SelectionRequest) (*dto.EditorSessionResponse, error)
	ToggleMark(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, mark string) (*dto.EditorSessionResponse, error)
	ToggleBlock(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, block string) (*dto.EditorSessionResponse, error)
	ToggleAlign(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, align string) (*dto.EditorSessionResponse, error)
	Save(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) (*dto.SaveEditorSessionResponse, error)
	Close(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) error
}

type editorService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionRepo    contract.EditorSessionRepository
	contentService IContentService
	postService    IPostService
	broadcaster    LiveBroadcaster
	maxSessions    int
	logger         logger.ILogger
}

func NewEditorService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo contract.EditorSessionRepository,
	contentService IContentService,
	postService IPostService,
	broadcaster LiveBroadcaster,
	maxSessions int,
	log logger.ILogger,
) IEditorService {
	return &editorService{
		uowFactory:     uowFactory,
		sessionRepo:    sessionRepo,
		contentService: contentService,
		postService:    postService,
		broadcaster:    broadcaster,
		maxSessions:    maxSessions,
		logger:         log,
	}
}

func (s *editorService) Open(ctx context.Context, actor entity.Actor, req *dto.OpenEditorSessionRequest) (*dto.EditorSessionResponse, error) {
	if s.maxSessions > 0 && s.sessionRepo.CountByUser(actor.Id) >= s.maxSessions {
		return nil, ErrSessionLimit
	}

	content := ""
	var postId *uuid.UUID
	if req.PostId != nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: *req.PostId})
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		if !actor.CanModify(post.UserId) {
			return nil, ErrForbidden
		}
		content = post.Content
		id := post.Id
		postId = &id
	} else if req.Content != nil {
		content = *req.Content
	}

	var doc richtext.Document
	if content != "" {
		doc, _ = s.contentService.Decode(ctx, content)
	}

	now := time.Now()
	session := &entity.EditorSession{
		Id:        uuid.New(),
		UserId:    actor.Id,
		PostId:    postId,
		Editor:    richtext.NewSession(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessionRepo.Save(session)

	s.logger.Info(editorModule, "Editor session opened", map[string]interface{}{
		"session_id": session.Id.String(),
		"user_id":    actor.Id.String(),
		"post_id":    uuidString(postId),
	})

	session.Lock()
	defer session.Unlock()
	return toEditorSessionResponse(session), nil
}

// withSession runs fn on a session owned by the actor while holding the
// session lock. A session touched by fn is saved again, which extends
// its expiry.
func (s *editorService) withSession(actor entity.Actor, sessionId uuid.UUID, fn func(session *entity.EditorSession) error) (*dto.EditorSessionResponse, error) {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok || session.UserId != actor.Id {
		return nil, ErrSessionNotFound
	}

	session.Lock()
	defer session.Unlock()

	if fn != nil {
		if err := fn(session); err != nil {
			return nil, err
		}
		session.UpdatedAt = time.Now()
		s.sessionRepo.Save(session)
	}
	return toEditorSessionResponse(session), nil
}

func (s *editorService) Get(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) (*dto.EditorSessionResponse, error) {
	return s.withSession(actor, sessionId, nil)
}

func (s *editorService) Select(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, req *dto.SelectionRequest) (*dto.EditorSessionResponse, error) {
	return s.withSession(actor, sessionId, func(session *entity.EditorSession) error {
		switch {
		case req.Clear:
			session.Editor.Deselect()
			return nil
		case req.All:
			return session.Editor.SelectAll()
		default:
			return session.Editor.Select(richtext.Selection{Anchor: req.Anchor, Focus: req.Focus})
		}
	})
}

func (s *editorService) ToggleMark(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, mark string) (*dto.EditorSessionResponse, error) {
	m := richtext.Mark(mark)
	if !m.Valid() {
		return nil, fmt.Errorf("%w: mark %q", ErrUnknownFormat, mark)
	}
	return s.withSession(actor, sessionId, func(session *entity.EditorSession) error {
		before := session.Editor.Snapshot()
		session.Editor.ToggleMark(m)
		session.Dirty = session.Dirty || !documentsEqual(before, session.Editor.Doc)
		return nil
	})
}

func (s *editorService) ToggleBlock(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, block string) (*dto.EditorSessionResponse, error) {
	t := richtext.BlockType(block)
	if !t.Known() {
		return nil, fmt.Errorf("%w: block %q", ErrUnknownFormat, block)
	}
	return s.withSession(actor, sessionId, func(session *entity.EditorSession) error {
		before := session.Editor.Snapshot()
		session.Editor.ToggleBlock(t)
		session.Dirty = session.Dirty || !documentsEqual(before, session.Editor.Doc)
		return nil
	})
}

func (s *editorService) ToggleAlign(ctx context.Context, actor entity.Actor, sessionId uuid.UUID, align string) (*dto.EditorSessionResponse, error) {
	a := richtext.AlignType(align)
	if !a.Valid() {
		return nil, fmt.Errorf("%w: align %q", ErrUnknownFormat, align)
	}
	return s.withSession(actor, sessionId, func(session *entity.EditorSession) error {
		before := session.Editor.Snapshot()
		session.Editor.ToggleAlign(a)
		session.Dirty = session.Dirty || !documentsEqual(before, session.Editor.Doc)
		return nil
	})
}

func (s *editorService) Save(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) (*dto.SaveEditorSessionResponse, error) {
	var out *dto.SaveEditorSessionResponse
	_, err := s.withSession(actor, sessionId, func(session *entity.EditorSession) error {
		if session.PostId == nil {
			return ErrSessionUnbound
		}
		content, err := richtext.Encode(session.Editor.Doc)
		if err != nil {
			return err
		}
		if _, err := s.postService.SetContent(ctx, actor, *session.PostId, content); err != nil {
			return err
		}
		session.Dirty = false
		out = &dto.SaveEditorSessionResponse{
			PostId:  *session.PostId,
			Content: content,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(editorModule, "Editor session saved", map[string]interface{}{
		"session_id": sessionId.String(),
		"post_id":    out.PostId.String(),
	})
	// Other tabs and devices of the same user refresh their copy.
	if s.broadcaster != nil {
		s.broadcaster.SendToUser(actor.Id, dto.LiveMessage{
			Type: "EDITOR_SAVED",
			Data: map[string]interface{}{
				"session_id": sessionId.String(),
				"post_id":    out.PostId.String(),
			},
			OccurredAt: time.Now(),
		})
	}
	return out, nil
}

func (s *editorService) Close(ctx context.Context, actor entity.Actor, sessionId uuid.UUID) error {
	session, ok := s.sessionRepo.Get(sessionId)
	if !ok || session.UserId != actor.Id {
		return ErrSessionNotFound
	}
	s.sessionRepo.Delete(sessionId)
	return nil
}

func documentsEqual(a, b richtext.Document) bool {
	ea, errA := richtext.Encode(a)
	eb, errB := richtext.Encode(b)
	return errA == nil && errB == nil && ea == eb
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// toEditorSessionResponse must be called with the session locked.
func toEditorSessionResponse(session *entity.EditorSession) *dto.EditorSessionResponse {
	editor := session.Editor

	active := dto.ActiveFormats{
		Marks:  make(map[string]bool, len(richtext.Marks)),
		Blocks: []string{},
	}
	for _, m := range richtext.Marks {
		active.Marks[string(m)] = editor.IsMarkActive(m)
	}
	for _, t := range richtext.BlockTypes {
		if editor.IsBlockActive(t) {
			active.Blocks = append(active.Blocks, string(t))
		}
	}
	for _, a := range richtext.Alignments {
		if editor.IsAlignActive(a) {
			active.Align = string(a)
			break
		}
	}

	var sel *richtext.Selection
	if editor.Selection != nil {
		copied := *editor.Selection
		sel = &copied
	}

	return &dto.EditorSessionResponse{
		Id:        session.Id,
		PostId:    session.PostId,
		Document:  editor.Snapshot(),
		Selection: sel,
		Active:    active,
		Dirty:     session.Dirty,
		UpdatedAt: session.UpdatedAt,
	}
}
