package passes

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"solstice/db"
	"solstice/models"
	"solstice/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// PrintPass renders a pass as a downloadable PDF with its QR code. Only
// the pass owner can print it.
func PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	passID := ps.ByName("passid")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	var pass models.Pass
	err := db.PassesCollection.FindOne(ctx, bson.M{
		"passid": passID,
		"userid": utils.GetUserIDFromRequest(r),
	}).Decode(&pass)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Pass not found")
		return
	}

	qrPNG, err := qrcode.Encode(pass.Payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Admission Pass")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", pass.HolderName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Pass: %s (%d of %d)", pass.PassType, pass.PassNumber, pass.TotalPasses))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Issued: %s", pass.CreatedAt.Format(time.DateOnly)))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=pass-"+pass.PassID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
