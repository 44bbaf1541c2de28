package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/goods-trace/internal/domain"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/storage"
	"github.com/tu-usuario/goods-trace/internal/ingest"
	"github.com/tu-usuario/goods-trace/pkg/logger"
)

// ingestTimeout límite para la ingestión en background de un archivo.
const ingestTimeout = 5 * time.Minute

// UploadUseCase recibe un CSV, lo guarda en disco, registra el archivo y
// lanza la ingestión en background. La respuesta al cliente no espera el
// resultado de la ingestión.
type UploadUseCase struct {
	store      *storage.LocalStore
	fileRepo   repository.FileRepository
	dispatcher *ingest.Dispatcher
	log        *logger.Logger
}

// NewUploadUseCase construye el caso de uso de subida de archivos.
func NewUploadUseCase(store *storage.LocalStore, fileRepo repository.FileRepository, dispatcher *ingest.Dispatcher, log *logger.Logger) *UploadUseCase {
	return &UploadUseCase{store: store, fileRepo: fileRepo, dispatcher: dispatcher, log: log}
}

// Upload guarda el contenido, crea el registro user_files y dispara la
// ingestión en una goroutine. Los errores de ingestión solo se loguean.
func (uc *UploadUseCase) Upload(ctx context.Context, userID, filename string, content []byte) (*entity.UserFile, error) {
	path, err := uc.store.Save(userID, content)
	if err != nil {
		return nil, err
	}
	file := &entity.UserFile{
		ID:        uuid.New().String(),
		Filename:  filename,
		Path:      path,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := uc.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	go uc.ingest(file)

	return file, nil
}

// ingest corre la ingestión con su propio contexto: la petición HTTP que la
// originó ya terminó cuando esto ejecuta.
func (uc *UploadUseCase) ingest(file *entity.UserFile) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	if _, _, err := uc.dispatcher.Run(ctx, file); err != nil {
		if errors.Is(err, domain.ErrUnknownHeader) {
			uc.log.Warn().
				Str("file_id", file.ID).
				Str("filename", file.Filename).
				Msg("archivo descartado: cabecera CSV no reconocida")
			return
		}
		uc.log.Error().Err(err).
			Str("file_id", file.ID).
			Str("filename", file.Filename).
			Msg("error ingiriendo archivo")
	}
}
