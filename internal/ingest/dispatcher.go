// Package ingest lee un CSV subido, detecta su forma por la cabecera y
// convierte las filas en registros tipados que se persisten con un único
// bulk insert por archivo. Todo el parseo ocurre antes de tocar la base:
// un campo malformado aborta la ingestión completa sin commit parcial.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/pkg/logger"
)

const dateLayout = "2006-01-02"

// Batch resultado del parseo de un archivo: la variante detectada y las filas
// tipadas de esa variante (los demás slices quedan vacíos).
type Batch struct {
	Kind           Kind
	Produced       []entity.ProducedGoods
	Sold           []entity.SoldGoods
	Transported    []entity.TransportedGoods
	AgrProduction  []entity.AgrProduction
	AgrSold        []entity.AgrSold
	AgrTransported []entity.AgrTransported
	SalePoints     []entity.SalePoint
}

// Len número de filas parseadas.
func (b Batch) Len() int {
	return len(b.Produced) + len(b.Sold) + len(b.Transported) +
		len(b.AgrProduction) + len(b.AgrSold) + len(b.AgrTransported) +
		len(b.SalePoints)
}

// Dispatcher orquesta detección, parseo y persistencia de archivos subidos.
type Dispatcher struct {
	goods    repository.GoodsRepository
	agg      repository.AggregateRepository
	ref      repository.ReferenceRepository
	encoding string // "" o "windows-1251" para exportes heredados del regulador
	log      *logger.Logger
}

// NewDispatcher construye el dispatcher de ingestión.
func NewDispatcher(
	goods repository.GoodsRepository,
	agg repository.AggregateRepository,
	ref repository.ReferenceRepository,
	encoding string,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{goods: goods, agg: agg, ref: ref, encoding: encoding, log: log}
}

// Run ingesta el archivo de un UserFile: parsea todo en memoria y hace un
// único bulk insert. Devuelve la variante detectada y las filas persistidas.
func (d *Dispatcher) Run(ctx context.Context, file *entity.UserFile) (Kind, int64, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return KindUnknown, 0, fmt.Errorf("abrir archivo %s: %w", file.Path, err)
	}
	defer f.Close()

	batch, err := ParseFile(decodeReader(f, d.encoding), file.UserID)
	if err != nil {
		return batch.Kind, 0, err
	}

	n, err := d.persist(ctx, batch)
	if err != nil {
		return batch.Kind, 0, err
	}
	d.log.Info().
		Str("file", file.Filename).
		Str("kind", batch.Kind.String()).
		Int64("rows", n).
		Msg("archivo ingestado")
	return batch.Kind, n, nil
}

func (d *Dispatcher) persist(ctx context.Context, b Batch) (int64, error) {
	switch b.Kind {
	case KindProduced:
		return d.goods.BulkInsertProduced(ctx, b.Produced)
	case KindSold:
		return d.goods.BulkInsertSold(ctx, b.Sold)
	case KindTransported:
		return d.goods.BulkInsertTransported(ctx, b.Transported)
	case KindAgrProduction:
		return d.agg.BulkInsertProduction(ctx, b.AgrProduction)
	case KindAgrSold:
		return d.agg.BulkInsertSold(ctx, b.AgrSold)
	case KindAgrTransported:
		return d.agg.BulkInsertTransported(ctx, b.AgrTransported)
	case KindSalePoints:
		return d.ref.UpsertSalePoints(ctx, b.SalePoints)
	default:
		return 0, nil
	}
}

// decodeReader envuelve el reader con el decoder de charset si se configuró.
func decodeReader(r io.Reader, encoding string) io.Reader {
	if encoding == "windows-1251" {
		return transform.NewReader(r, charmap.Windows1251.NewDecoder())
	}
	return r
}

// ParseFile lee la primera fila como cabecera, resuelve la variante y parsea
// el resto de filas posicionalmente. Cabecera desconocida devuelve
// domain.ErrUnknownHeader con cero filas; cualquier fila malformada aborta
// el parseo completo con el número de línea en el error.
func ParseFile(r io.Reader, userID string) (Batch, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return Batch{}, fmt.Errorf("archivo vacío: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return Batch{}, fmt.Errorf("leer cabecera: %w", err)
	}

	kind, err := Detect(header)
	if err != nil {
		return Batch{Kind: kind}, err
	}

	batch := Batch{Kind: kind}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return batch, fmt.Errorf("línea %d: %w", line, err)
		}
		if err := appendRow(&batch, record, userID); err != nil {
			return batch, fmt.Errorf("línea %d: %w", line, err)
		}
	}
	return batch, nil
}

func appendRow(b *Batch, rec []string, userID string) error {
	switch b.Kind {
	case KindProduced:
		row, err := parseProduced(rec, userID)
		if err != nil {
			return err
		}
		b.Produced = append(b.Produced, row)
	case KindSold:
		row, err := parseSold(rec, userID)
		if err != nil {
			return err
		}
		b.Sold = append(b.Sold, row)
	case KindTransported:
		row, err := parseTransported(rec, userID)
		if err != nil {
			return err
		}
		b.Transported = append(b.Transported, row)
	case KindAgrProduction:
		row, err := parseAgrProduction(rec, userID)
		if err != nil {
			return err
		}
		b.AgrProduction = append(b.AgrProduction, row)
	case KindAgrSold:
		row, err := parseAgrSold(rec, userID)
		if err != nil {
			return err
		}
		b.AgrSold = append(b.AgrSold, row)
	case KindAgrTransported:
		row, err := parseAgrTransported(rec, userID)
		if err != nil {
			return err
		}
		b.AgrTransported = append(b.AgrTransported, row)
	case KindSalePoints:
		row, err := parseSalePoint(rec)
		if err != nil {
			return err
		}
		b.SalePoints = append(b.SalePoints, row)
	}
	return nil
}

// ── Parsers posicionales por variante ─────────────────────────────────────────

func parseProduced(rec []string, userID string) (entity.ProducedGoods, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.ProducedGoods{}, err
	}
	cnt, err := parseInt("cnt", rec[5])
	if err != nil {
		return entity.ProducedGoods{}, err
	}
	return entity.ProducedGoods{
		Dt:            dt,
		INN:           rec[1],
		GTIN:          rec[2],
		PrID:          rec[3],
		OperationType: rec[4],
		Cnt:           cnt,
		UserID:        userID,
	}, nil
}

func parseSold(rec []string, userID string) (entity.SoldGoods, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.SoldGoods{}, err
	}
	price, err := parsePrice(rec[6])
	if err != nil {
		return entity.SoldGoods{}, err
	}
	cnt, err := parseInt("cnt", rec[7])
	if err != nil {
		return entity.SoldGoods{}, err
	}
	return entity.SoldGoods{
		Dt:            dt,
		GTIN:          rec[1],
		PrID:          rec[2],
		INN:           rec[3],
		IDSp:          rec[4],
		TypeOperation: rec[5],
		Price:         price,
		Cnt:           cnt,
		UserID:        userID,
	}, nil
}

func parseTransported(rec []string, userID string) (entity.TransportedGoods, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.TransportedGoods{}, err
	}
	cnt, err := parseInt("cnt_moved", rec[5])
	if err != nil {
		return entity.TransportedGoods{}, err
	}
	return entity.TransportedGoods{
		Dt:          dt,
		GTIN:        rec[1],
		PrID:        rec[2],
		SenderINN:   rec[3],
		ReceiverINN: rec[4],
		CntMoved:    cnt,
		UserID:      userID,
	}, nil
}

func parseAgrProduction(rec []string, userID string) (entity.AgrProduction, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.AgrProduction{}, err
	}
	region, err := parseInt("region_code", rec[1])
	if err != nil {
		return entity.AgrProduction{}, err
	}
	cnt, err := parseInt("cnt", rec[2])
	if err != nil {
		return entity.AgrProduction{}, err
	}
	assort, err := parseInt("cnt_assortment", rec[3])
	if err != nil {
		return entity.AgrProduction{}, err
	}
	brand, err := parseInt("cnt_brand", rec[4])
	if err != nil {
		return entity.AgrProduction{}, err
	}
	return entity.AgrProduction{
		Dt:            dt,
		RegionCode:    int(region),
		Cnt:           cnt,
		CntAssortment: assort,
		CntBrand:      brand,
		UserID:        userID,
	}, nil
}

func parseAgrSold(rec []string, userID string) (entity.AgrSold, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.AgrSold{}, err
	}
	region, err := parseInt("region_code", rec[1])
	if err != nil {
		return entity.AgrSold{}, err
	}
	sum, err := parsePrice(rec[2])
	if err != nil {
		return entity.AgrSold{}, err
	}
	cnt, err := parseInt("cnt", rec[3])
	if err != nil {
		return entity.AgrSold{}, err
	}
	assort, err := parseInt("cnt_assortment", rec[4])
	if err != nil {
		return entity.AgrSold{}, err
	}
	brand, err := parseInt("cnt_brand", rec[5])
	if err != nil {
		return entity.AgrSold{}, err
	}
	return entity.AgrSold{
		Dt:            dt,
		RegionCode:    int(region),
		SumPrice:      sum,
		Cnt:           cnt,
		CntAssortment: assort,
		CntBrand:      brand,
		UserID:        userID,
	}, nil
}

func parseAgrTransported(rec []string, userID string) (entity.AgrTransported, error) {
	dt, err := parseDate(rec[0])
	if err != nil {
		return entity.AgrTransported{}, err
	}
	region, err := parseInt("region_code", rec[1])
	if err != nil {
		return entity.AgrTransported{}, err
	}
	moved, err := parseInt("cnt_moved", rec[2])
	if err != nil {
		return entity.AgrTransported{}, err
	}
	assort, err := parseInt("cnt_assortment", rec[3])
	if err != nil {
		return entity.AgrTransported{}, err
	}
	brand, err := parseInt("cnt_brand", rec[4])
	if err != nil {
		return entity.AgrTransported{}, err
	}
	return entity.AgrTransported{
		Dt:            dt,
		RegionCode:    int(region),
		CntMoved:      moved,
		CntAssortment: assort,
		CntBrand:      brand,
		UserID:        userID,
	}, nil
}

func parseSalePoint(rec []string) (entity.SalePoint, error) {
	region, err := parseInt("region_code", rec[1])
	if err != nil {
		return entity.SalePoint{}, err
	}
	return entity.SalePoint{
		IDSp:         rec[0],
		RegionCode:   int(region),
		CityWithType: rec[2],
		PostalCode:   rec[3],
	}, nil
}

func parseDate(s string) (time.Time, error) {
	dt, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, err)
	}
	return dt, nil
}

func parseInt(field, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("campo %s=%q: %w", field, s, err)
	}
	return n, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("campo price=%q: %w", s, err)
	}
	return d, nil
}
