package documents

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-ledger/internal/application/inventory"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/domain/workflow"
)

// DeliveryInput datos editables de un despacho.
type DeliveryInput struct {
	Code         string                `json:"code"`
	CustomerID   string                `json:"customer_id"`
	Date         time.Time             `json:"date"`
	PromisedDate time.Time             `json:"promised_date"`
	Notes        string                `json:"notes"`
	Lines        []entity.DeliveryLine `json:"lines"`
}

// DeliveryService despachos a cliente. Aprobar y preparar verifican stock; completar lo descuenta.
type DeliveryService struct {
	*Service[entity.Delivery, entity.DeliveryStatus, DeliveryInput]
}

func newDeliveryService(e *engine) *DeliveryService {
	return &DeliveryService{&Service[entity.Delivery, entity.DeliveryStatus, DeliveryInput]{e: e, k: kind[entity.Delivery, entity.DeliveryStatus, DeliveryInput]{
		typ:       entity.DocumentDelivery,
		table:     workflow.Delivery,
		repo:      func(r repository.Repositories) repository.DocumentRepository[entity.Delivery] { return r.Deliveries },
		header:    func(d *entity.Delivery) *entity.DocumentHeader { return &d.DocumentHeader },
		status:    func(d *entity.Delivery) entity.DeliveryStatus { return d.Status },
		setStatus: func(d *entity.Delivery, s entity.DeliveryStatus) { d.Status = s },
		apply: func(ctx context.Context, repos repository.Repositories, in DeliveryInput, d *entity.Delivery) error {
			if err := requirePartner(ctx, repos, "customer_id", in.CustomerID); err != nil {
				return err
			}
			if err := requireLines(len(in.Lines)); err != nil {
				return err
			}
			for i, l := range in.Lines {
				if _, err := requireProduct(ctx, repos, i, l.ProductID); err != nil {
					return err
				}
				if err := requirePositive(i, l.Quantity); err != nil {
					return err
				}
				if l.PriceOut.IsNegative() {
					return domain.Invalid(lineField(i, "price_out"), "no puede ser negativo")
				}
				if err := requireBin(ctx, repos, i, l.LocationID); err != nil {
					return err
				}
			}
			d.Code = in.Code
			d.Notes = in.Notes
			d.CustomerID = in.CustomerID
			d.Date = dateOr(in.Date, e.now())
			d.PromisedDate = dateOr(in.PromisedDate, d.Date)
			if d.PromisedDate.Before(d.Date) {
				return domain.Invalid("promised_date", "no puede ser anterior a la fecha del despacho")
			}
			d.Lines = in.Lines
			return nil
		},
		effect: func(ctx context.Context, repos repository.Repositories, actor string, d *entity.Delivery, to entity.DeliveryStatus) error {
			switch to {
			case entity.DeliveryApproved, entity.DeliveryPrepared:
				return e.ledger.EnsureStock(ctx, repos, deliveryRequirements(d))
			case entity.DeliveryCompleted:
				return drawDown(ctx, e, repos, actor, entity.DocumentDelivery, d.ID, deliveryRequirements(d))
			}
			return nil
		},
	}}}
}

func deliveryRequirements(d *entity.Delivery) []inventory.StockRequirement {
	reqs := make([]inventory.StockRequirement, 0, len(d.Lines))
	for _, l := range d.Lines {
		reqs = append(reqs, inventory.StockRequirement{
			Key:      entity.StockKey{ProductID: l.ProductID, LocationID: l.LocationID, Batch: l.Batch},
			Quantity: l.Quantity,
		})
	}
	return reqs
}
