package usecase

import (
	"bytes"
	"context"
	"fmt"

	"tourism-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// VoucherService renders a printable PDF voucher for a confirmed booking.
type VoucherService interface {
	GenerateVoucher(ctx context.Context, userID, bookingID string) ([]byte, error)
}

type voucherService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVoucherService(repo *repository.Repository, log *zap.Logger) VoucherService {
	return &voucherService{
		repo: repo,
		log:  log.With(zap.String("service", "voucher")),
	}
}

func (s *voucherService) GenerateVoucher(ctx context.Context, userID, bookingID string) ([]byte, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	if booking.UserID.String() != userID {
		return nil, fmt.Errorf("booking %s does not belong to user %s", bookingID, userID)
	}

	user, err := s.repo.User.FindByID(ctx, booking.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Booking Voucher")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	lines := [][2]string{
		{"Reference", booking.ReferenceCode},
		{"Guest", user.Name},
		{"Item", fmt.Sprintf("%s (%s)", booking.ItemID.String(), booking.ItemType)},
		{"Check-in", booking.CheckIn.Format("2006-01-02")},
		{"Check-out", booking.CheckOut.Format("2006-01-02")},
		{"Guests", fmt.Sprintf("%d", booking.Guests)},
		{"Total", fmt.Sprintf("%.2f", booking.TotalPrice)},
		{"Status", string(booking.Status)},
	}
	for _, line := range lines {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 8, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, line[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Present this voucher together with a valid ID on arrival.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		s.log.Error("Failed to render voucher",
			zap.Error(err),
			zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("render voucher: %w", err)
	}

	s.log.Info("Voucher generated",
		zap.String("booking_id", bookingID),
		zap.String("reference_code", booking.ReferenceCode))

	return buf.Bytes(), nil
}
