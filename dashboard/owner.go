package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"

	"villa-client/api"
	"villa-client/models"
	"villa-client/utils"
)

// ErrEditNotImplemented is the stub response for the edit action.
var ErrEditNotImplemented = errors.New("edit functionality coming soon")

// ImageUpload is one file queued for upload during villa creation.
type ImageUpload struct {
	Name    string
	Content io.Reader
}

// Owner is the owner dashboard view model: the caller's villas plus create
// and delete actions. Edit is deliberately a stub.
type Owner struct {
	client      *api.Client
	logger      *utils.Logger
	validate    *validator.Validate
	uploadSlots int
}

// NewOwner creates an Owner view. uploadSlots bounds concurrent secondary
// image uploads.
func NewOwner(client *api.Client, logger *utils.Logger, uploadSlots int) *Owner {
	return &Owner{
		client:      client,
		logger:      logger,
		validate:    validator.New(),
		uploadSlots: uploadSlots,
	}
}

// MyVillas fetches the villas owned by the authenticated user.
func (o *Owner) MyVillas(ctx context.Context) ([]models.Villa, error) {
	return o.client.MyVillas(ctx)
}

// Delete removes a villa after the confirm callback agrees. Returns false
// when the user declined; the record is untouched in that case.
func (o *Owner) Delete(ctx context.Context, villaID int64, confirm func(villaID int64) bool) (bool, error) {
	if confirm != nil && !confirm(villaID) {
		return false, nil
	}
	if err := o.client.DeleteVilla(ctx, villaID); err != nil {
		return false, err
	}
	o.logger.Info("[owner] Villa %d deleted", villaID)
	return true, nil
}

// Edit is explicitly unimplemented.
func (o *Owner) Edit(villaID int64) error {
	return ErrEditNotImplemented
}

// AddVilla submits a new villa. The main image upload must succeed before
// the record is created; additional images upload independently and a
// failure on one degrades with a warning instead of aborting the rest.
func (o *Owner) AddVilla(ctx context.Context, form models.NewVillaRequest, mainImage *ImageUpload, extraImages []ImageUpload) (*models.Villa, error) {
	if err := o.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("villa form is incomplete: %w", err)
	}
	if mainImage == nil || mainImage.Content == nil {
		return nil, fmt.Errorf("main image is required")
	}

	mainURL, err := o.client.UploadImage(ctx, mainImage.Name, mainImage.Content)
	if err != nil {
		return nil, fmt.Errorf("upload main image: %w", err)
	}
	form.MainImage = mainURL

	form.Images = append(form.Images, o.uploadExtras(ctx, extraImages)...)

	villa, err := o.client.CreateVilla(ctx, form)
	if err != nil {
		return nil, err
	}
	o.logger.Info("[owner] Villa %d (%s) submitted for approval", villa.ID, villa.Name)
	return villa, nil
}

// uploadExtras runs the secondary uploads through the pool and returns the
// URLs that made it. Failures are logged, never fatal.
func (o *Owner) uploadExtras(ctx context.Context, images []ImageUpload) []string {
	if len(images) == 0 {
		return nil
	}

	pool := utils.NewUploadPool(o.uploadSlots)
	var mu sync.Mutex
	var urls []string

	for _, img := range images {
		img := img
		pool.Submit(func() error {
			url, err := o.client.UploadImage(ctx, img.Name, img.Content)
			if err != nil {
				return fmt.Errorf("upload %q: %w", img.Name, err)
			}
			mu.Lock()
			urls = append(urls, url)
			mu.Unlock()
			return nil
		})
	}

	for _, err := range pool.Wait() {
		o.logger.Warn("[owner] Secondary image upload failed: %v", err)
	}
	return urls
}
