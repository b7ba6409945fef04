package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/Khursands/Online-Pharmacy/internal/model"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/storage"
)

var allowedPrescriptionTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// sniffLen 识别文件类型读取的头部字节数
const sniffLen = 3072

// PrescriptionUpload 上传的处方文件；类型按内容识别，不信任客户端声明
type PrescriptionUpload struct {
	File     io.Reader
	Filename string
	Notes    string
}

// PrescriptionService 处方上传与药剂师审核；与订单不自动关联
type PrescriptionService interface {
	Upload(ctx context.Context, userID string, in PrescriptionUpload) (*model.Prescription, error)
	List(ctx context.Context, userID string) ([]*model.Prescription, error)
	Review(ctx context.Context, reviewerID, id string, status model.PrescriptionStatus, notes string) (*model.Prescription, error)
}

type prescriptionService struct {
	repo  repository.PrescriptionRepository
	store storage.Store
}

func NewPrescriptionService(repo repository.PrescriptionRepository, store storage.Store) PrescriptionService {
	return &prescriptionService{repo: repo, store: store}
}

func (s *prescriptionService) Upload(ctx context.Context, userID string, in PrescriptionUpload) (*model.Prescription, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.File, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("read prescription: %w", err)
	}
	head = head[:n]

	ct, ext, ok := detectPrescriptionType(head)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, mimetype.Detect(head).String())
	}
	if e := strings.ToLower(filepath.Ext(in.Filename)); e == ".jpeg" || e == ext {
		ext = e
	}

	id := uuid.New().String()
	body := io.MultiReader(bytes.NewReader(head), in.File)
	url, err := s.store.Save(ctx, fmt.Sprintf("%s/%s%s", userID, id, ext), body, ct)
	if err != nil {
		return nil, fmt.Errorf("store prescription: %w", err)
	}

	p := &model.Prescription{
		ID:     id,
		UserID: userID,
		Image:  url,
		Status: model.PrescriptionPending,
		Notes:  strings.TrimSpace(in.Notes),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func detectPrescriptionType(head []byte) (string, string, bool) {
	mt := mimetype.Detect(head)
	for ct, ext := range allowedPrescriptionTypes {
		if mt.Is(ct) {
			return ct, ext, true
		}
	}
	return "", "", false
}

func (s *prescriptionService) List(ctx context.Context, userID string) ([]*model.Prescription, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if list == nil && err == nil {
		list = []*model.Prescription{}
	}
	return list, err
}

func (s *prescriptionService) Review(ctx context.Context, reviewerID, id string, status model.PrescriptionStatus, notes string) (*model.Prescription, error) {
	if status != model.PrescriptionApproved && status != model.PrescriptionRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}
	err := s.repo.Review(ctx, id, status, reviewerID, strings.TrimSpace(notes))
	if errors.Is(err, repository.ErrStateChanged) {
		if _, getErr := s.repo.GetByID(ctx, id); isNotFound(getErr) {
			return nil, fmt.Errorf("prescription %w", ErrNotFound)
		}
		return nil, ErrAlreadyProcessed
	}
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
