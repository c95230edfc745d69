package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"studenthub/internal/model"
	storageMocks "studenthub/internal/storage/mocks"
	"studenthub/internal/store"
	storeMocks "studenthub/internal/store/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMaterialService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         UploadInput
		setupMocks func(mStore *storeMocks.MockMaterialStore, mBin *storageMocks.MockBinaryStore)
		wantErr    error
		wantErrMsg string
		check      func(t *testing.T, m *model.Material)
	}{
		{
			name: "happy path with defaults",
			in: UploadInput{
				Type:     "ebook",
				Title:    "  X  ",
				Filename: "x.pdf",
				File:     strings.NewReader("pdf"),
				Size:     3,
			},
			setupMocks: func(mStore *storeMocks.MockMaterialStore, mBin *storageMocks.MockBinaryStore) {
				mBin.On("Save", ctx, "ebook", "x.pdf", mock.Anything, int64(3)).
					Return("ebooks/1700-x.pdf", nil)
				mStore.On("Append", ctx, model.CollectionEbooks, mock.MatchedBy(func(m model.Material) bool {
					return m.Title == "X" &&
						m.Description == "" &&
						m.Year == model.YearUnknown &&
						m.Downloads == 0 &&
						m.File == "ebooks/1700-x.pdf" &&
						m.ID != "" &&
						!m.CreatedAt.IsZero()
				})).Return(func(ctx context.Context, collection string, m model.Material) *model.Material {
					return &m
				}, nil)
			},
			check: func(t *testing.T, m *model.Material) {
				assert.Equal(t, "X", m.Title)
				assert.Equal(t, model.YearUnknown, m.Year)
				assert.WithinDuration(t, time.Now().UTC(), m.CreatedAt, 5*time.Second)
			},
		},
		{
			name:    "missing file",
			in:      UploadInput{Type: "ebook", Title: "X"},
			wantErr: ErrFileRequired,
		},
		{
			name:    "missing title",
			in:      UploadInput{Type: "ebook", Title: "   ", File: strings.NewReader("x"), Filename: "x.pdf"},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing type",
			in:      UploadInput{Title: "X", File: strings.NewReader("x"), Filename: "x.pdf"},
			wantErr: ErrMissingField,
		},
		{
			name: "invalid type rejected before any storage write",
			in:   UploadInput{Type: "magazine", Title: "X", File: strings.NewReader("x"), Filename: "x.pdf"},
			// no mock expectations: neither storage nor store may be touched
			wantErr: ErrInvalidType,
		},
		{
			name: "storage failure commits nothing",
			in:   UploadInput{Type: "questionPaper", Title: "QP", File: strings.NewReader("x"), Filename: "qp.pdf", Size: 1},
			setupMocks: func(mStore *storeMocks.MockMaterialStore, mBin *storageMocks.MockBinaryStore) {
				mBin.On("Save", ctx, "questionPaper", "qp.pdf", mock.Anything, int64(1)).
					Return("", errors.New("disk full"))
			},
			wantErrMsg: "save binary: disk full",
		},
		{
			name: "append failure rolls back the binary",
			in:   UploadInput{Type: "ebook", Title: "X", File: strings.NewReader("x"), Filename: "x.pdf", Size: 1},
			setupMocks: func(mStore *storeMocks.MockMaterialStore, mBin *storageMocks.MockBinaryStore) {
				mBin.On("Save", ctx, "ebook", "x.pdf", mock.Anything, int64(1)).
					Return("ebooks/1700-x.pdf", nil)
				mStore.On("Append", ctx, model.CollectionEbooks, mock.Anything).
					Return(nil, errors.New("write failed"))
				mBin.On("Remove", ctx, "ebooks/1700-x.pdf").Return(nil)
			},
			wantErrMsg: "append record failed: write failed",
		},
		{
			name: "append failure with failed rollback",
			in:   UploadInput{Type: "ebook", Title: "X", File: strings.NewReader("x"), Filename: "x.pdf", Size: 1},
			setupMocks: func(mStore *storeMocks.MockMaterialStore, mBin *storageMocks.MockBinaryStore) {
				mBin.On("Save", ctx, "ebook", "x.pdf", mock.Anything, int64(1)).
					Return("ebooks/1700-x.pdf", nil)
				mStore.On("Append", ctx, model.CollectionEbooks, mock.Anything).
					Return(nil, errors.New("write failed"))
				mBin.On("Remove", ctx, "ebooks/1700-x.pdf").Return(errors.New("remove failed"))
			},
			wantErrMsg: "rollback remove failed: remove failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockMaterialStore)
			mBin := new(storageMocks.MockBinaryStore)
			svc := NewMaterialService(mStore, mBin)

			if tt.setupMocks != nil {
				tt.setupMocks(mStore, mBin)
			}

			m, err := svc.Upload(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, m)
				if tt.check != nil {
					tt.check(t, m)
				}
			}
			mStore.AssertExpectations(t)
			mBin.AssertExpectations(t)
		})
	}
}

func TestMaterialService_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("increments by exactly one and resolves the redirect", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		mBin := new(storageMocks.MockBinaryStore)
		svc := NewMaterialService(mStore, mBin)

		record := model.Material{Title: "QP", File: "question-papers/1700-qp.pdf", Downloads: 4}
		mStore.On("MutateAt", ctx, model.CollectionQuestionPapers, 2, mock.Anything).
			Run(func(args mock.Arguments) {
				fn := args.Get(3).(func(*model.Material))
				fn(&record)
			}).
			Return(&record, nil)
		mBin.On("ResolveURL", ctx, "question-papers/1700-qp.pdf").
			Return("/pdfs/question-papers/1700-qp.pdf", nil)

		url, err := svc.Download(ctx, "questionPaper", 2)

		assert.NoError(t, err)
		assert.Equal(t, "/pdfs/question-papers/1700-qp.pdf", url)
		assert.Equal(t, 5, record.Downloads)
		mStore.AssertExpectations(t)
		mBin.AssertExpectations(t)
	})

	t.Run("invalid type", func(t *testing.T) {
		svc := NewMaterialService(new(storeMocks.MockMaterialStore), new(storageMocks.MockBinaryStore))

		_, err := svc.Download(ctx, "magazine", 0)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("out of range maps to not found", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		svc := NewMaterialService(mStore, new(storageMocks.MockBinaryStore))

		mStore.On("MutateAt", ctx, model.CollectionEbooks, 99, mock.Anything).
			Return(nil, store.ErrNotFound)

		_, err := svc.Download(ctx, "ebook", 99)
		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertExpectations(t)
	})

	t.Run("resolve failure", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		mBin := new(storageMocks.MockBinaryStore)
		svc := NewMaterialService(mStore, mBin)

		mStore.On("MutateAt", ctx, model.CollectionEbooks, 0, mock.Anything).
			Return(&model.Material{File: "ebooks/a.pdf"}, nil)
		mBin.On("ResolveURL", ctx, "ebooks/a.pdf").Return("", errors.New("presign failed"))

		_, err := svc.Download(ctx, "ebook", 0)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "resolve binary url")
	})
}

func TestMaterialService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record and binary", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		mBin := new(storageMocks.MockBinaryStore)
		svc := NewMaterialService(mStore, mBin)

		removed := model.Material{Title: "A", File: "ebooks/1700-a.pdf"}
		mStore.On("RemoveAt", ctx, model.CollectionEbooks, 1).Return(removed, nil)
		mBin.On("Remove", ctx, "ebooks/1700-a.pdf").Return(nil)

		got, err := svc.Delete(ctx, "ebook", 1)

		assert.NoError(t, err)
		assert.Equal(t, removed, got)
		mStore.AssertExpectations(t)
		mBin.AssertExpectations(t)
	})

	t.Run("binary delete failure is swallowed", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		mBin := new(storageMocks.MockBinaryStore)
		svc := NewMaterialService(mStore, mBin)

		removed := model.Material{Title: "A", File: "ebooks/1700-a.pdf"}
		mStore.On("RemoveAt", ctx, model.CollectionEbooks, 0).Return(removed, nil)
		mBin.On("Remove", ctx, "ebooks/1700-a.pdf").Return(errors.New("unlink failed"))

		_, err := svc.Delete(ctx, "ebook", 0)

		// Metadata removal already succeeded; the orphaned file is acceptable.
		assert.NoError(t, err)
		mStore.AssertExpectations(t)
		mBin.AssertExpectations(t)
	})

	t.Run("invalid type", func(t *testing.T) {
		svc := NewMaterialService(new(storeMocks.MockMaterialStore), new(storageMocks.MockBinaryStore))

		_, err := svc.Delete(ctx, "magazine", 0)
		assert.ErrorIs(t, err, ErrInvalidType)
	})

	t.Run("out of range maps to not found", func(t *testing.T) {
		mStore := new(storeMocks.MockMaterialStore)
		svc := NewMaterialService(mStore, new(storageMocks.MockBinaryStore))

		mStore.On("RemoveAt", ctx, model.CollectionQuestionPapers, 7).
			Return(model.Material{}, store.ErrNotFound)

		_, err := svc.Delete(ctx, "questionPaper", 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
