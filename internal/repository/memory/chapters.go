package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"course-platform/internal/domain/chapter"
	repo "course-platform/internal/repository/interfaces"
)

// ChapterRepository реализует repo.ChapterRepository в памяти.
type ChapterRepository struct {
	s *Store
}

var _ repo.ChapterRepository = (*ChapterRepository)(nil)

func (r *ChapterRepository) Create(_ context.Context, ch *chapter.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(ch) {
		return repo.ErrAlreadyExists
	}
	r.s.chapters[ch.ID] = *ch
	return nil
}

func (r *ChapterRepository) nameTaken(ch *chapter.Chapter) bool {
	for _, other := range r.s.chapters {
		if other.ID != ch.ID && other.CourseID == ch.CourseID && other.Name == ch.Name {
			return true
		}
	}
	return false
}

// LockForUpdate только проверяет существование главы.
func (r *ChapterRepository) LockForUpdate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chapters[id]; !ok {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ChapterRepository) GetByID(_ context.Context, id uuid.UUID) (*chapter.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ch, ok := r.s.chapters[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &ch, nil
}

func (r *ChapterRepository) GetByNameInCourse(_ context.Context, courseID uuid.UUID, name string) (*chapter.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ch := range r.s.chapters {
		if ch.CourseID == courseID && ch.Name == name {
			cp := ch
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *ChapterRepository) list(match func(chapter.Chapter) bool) []*chapter.Chapter {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*chapter.Chapter
	for _, ch := range r.s.chapters {
		if match(ch) {
			cp := ch
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CourseID != out[j].CourseID {
			return out[i].CourseID.String() < out[j].CourseID.String()
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func (r *ChapterRepository) List(_ context.Context) ([]*chapter.Chapter, error) {
	return r.list(func(chapter.Chapter) bool { return true }), nil
}

func (r *ChapterRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*chapter.Chapter, error) {
	return r.list(func(ch chapter.Chapter) bool { return ch.CourseID == courseID }), nil
}

func (r *ChapterRepository) Update(_ context.Context, ch *chapter.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chapters[ch.ID]; !ok {
		return repo.ErrNotFound
	}
	if r.nameTaken(ch) {
		return repo.ErrAlreadyExists
	}
	r.s.chapters[ch.ID] = *ch
	return nil
}

func (r *ChapterRepository) UpdateNumber(_ context.Context, id uuid.UUID, number int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ch, ok := r.s.chapters[id]
	if !ok {
		return repo.ErrNotFound
	}
	ch.Number = number
	r.s.chapters[id] = ch
	return nil
}

func (r *ChapterRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chapters[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.chapters, id)
	for scID, sc := range r.s.subchapters {
		if sc.ChapterID == id {
			delete(r.s.subchapters, scID)
		}
	}
	return nil
}

// SubChapterRepository реализует repo.SubChapterRepository в памяти.
type SubChapterRepository struct {
	s *Store
}

var _ repo.SubChapterRepository = (*SubChapterRepository)(nil)

func (r *SubChapterRepository) Create(_ context.Context, sc *chapter.SubChapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(sc) {
		return repo.ErrAlreadyExists
	}
	r.s.subchapters[sc.ID] = *sc
	return nil
}

func (r *SubChapterRepository) nameTaken(sc *chapter.SubChapter) bool {
	for _, other := range r.s.subchapters {
		if other.ID != sc.ID && other.ChapterID == sc.ChapterID && other.Name == sc.Name {
			return true
		}
	}
	return false
}

func (r *SubChapterRepository) GetByID(_ context.Context, id uuid.UUID) (*chapter.SubChapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.s.subchapters[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &sc, nil
}

func (r *SubChapterRepository) GetByNameInChapter(_ context.Context, chapterID uuid.UUID, name string) (*chapter.SubChapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sc := range r.s.subchapters {
		if sc.ChapterID == chapterID && sc.Name == name {
			cp := sc
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *SubChapterRepository) list(match func(chapter.SubChapter) bool) []*chapter.SubChapter {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*chapter.SubChapter
	for _, sc := range r.s.subchapters {
		if match(sc) {
			cp := sc
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ChapterID != out[j].ChapterID {
			return out[i].ChapterID.String() < out[j].ChapterID.String()
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func (r *SubChapterRepository) List(_ context.Context) ([]*chapter.SubChapter, error) {
	return r.list(func(chapter.SubChapter) bool { return true }), nil
}

func (r *SubChapterRepository) ListByChapter(_ context.Context, chapterID uuid.UUID) ([]*chapter.SubChapter, error) {
	return r.list(func(sc chapter.SubChapter) bool { return sc.ChapterID == chapterID }), nil
}

func (r *SubChapterRepository) Update(_ context.Context, sc *chapter.SubChapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subchapters[sc.ID]; !ok {
		return repo.ErrNotFound
	}
	if r.nameTaken(sc) {
		return repo.ErrAlreadyExists
	}
	r.s.subchapters[sc.ID] = *sc
	return nil
}

func (r *SubChapterRepository) UpdateNumber(_ context.Context, id uuid.UUID, number int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.s.subchapters[id]
	if !ok {
		return repo.ErrNotFound
	}
	sc.Number = number
	r.s.subchapters[id] = sc
	return nil
}

func (r *SubChapterRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.subchapters[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.subchapters, id)
	return nil
}
