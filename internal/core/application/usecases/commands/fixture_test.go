package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/require"
)

var bogota = func() *time.Location {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}()

// fixture drives handlers against the in-memory store with one actor per role.
type fixture struct {
	t     *testing.T
	store *memoryStore

	policy    services.PaymentPolicy
	settings  fixedThreshold
	biller    kernel.Actor
	treasury  kernel.Actor
	logistics kernel.Actor
	courier   kernel.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		t:         t,
		store:     newMemoryStore(),
		policy:    services.NewPaymentPolicy(),
		settings:  fixedThreshold(kernel.MustMoney(150000)),
		biller:    newActor(t, kernel.RoleBiller),
		treasury:  newActor(t, kernel.RoleTreasury),
		logistics: newActor(t, kernel.RoleLogistics),
		courier:   newActor(t, kernel.RoleCourier),
	}
}

func (f *fixture) orders() memoryOrderUoWFactory { return memoryOrderUoWFactory{f.store} }

func (f *fixture) deliveries() memoryDeliveryUoWFactory { return memoryDeliveryUoWFactory{f.store} }

func (f *fixture) createOrder(number string, facts order.CommercialFacts) kernel.UUID {
	f.t.Helper()
	cmd, err := commands.NewCreateOrderCommand(f.biller, number, facts, "")
	require.NoError(f.t, err)
	id, err := commands.NewCreateOrderCommandHandler(f.orders(), nil).Handle(f.t.Context(), cmd)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) route(id kernel.UUID, payment order.PaymentMethod, delivery order.DeliveryMethod) order.Status {
	f.t.Helper()
	cmd, err := commands.NewRouteOrderAfterReviewCommand(f.biller, id, payment, delivery, time.Now())
	require.NoError(f.t, err)
	status, err := commands.NewRouteOrderAfterReviewCommandHandler(f.orders()).Handle(f.t.Context(), cmd)
	require.NoError(f.t, err)
	return status
}

func (f *fixture) startPacking(id kernel.UUID, carrierID *kernel.UUID) error {
	cmd, err := commands.NewStartPackingCommand(f.logistics, id, carrierID)
	require.NoError(f.t, err)
	return commands.NewStartPackingCommandHandler(f.orders(), f.policy, f.settings).Handle(f.t.Context(), cmd)
}

func (f *fixture) pack(id kernel.UUID, carrierID *kernel.UUID) {
	f.t.Helper()
	require.NoError(f.t, f.startPacking(id, carrierID))
	cmd, err := commands.NewFinishPackingCommand(f.logistics, id)
	require.NoError(f.t, err)
	require.NoError(f.t, commands.NewFinishPackingCommandHandler(f.orders()).Handle(f.t.Context(), cmd))
}

func (f *fixture) assign(id kernel.UUID, courier kernel.Actor) error {
	cmd, err := commands.NewAssignCourierCommand(f.logistics, id, courier.UserID())
	require.NoError(f.t, err)
	return commands.NewAssignCourierCommandHandler(f.deliveries()).Handle(f.t.Context(), cmd)
}

func (f *fixture) accept(id kernel.UUID, courier kernel.Actor) error {
	cmd, err := commands.NewAcceptAssignmentCommand(courier, id)
	require.NoError(f.t, err)
	return commands.NewAcceptAssignmentCommandHandler(f.deliveries()).Handle(f.t.Context(), cmd)
}

func (f *fixture) startDelivery(id kernel.UUID, courier kernel.Actor) error {
	cmd, err := commands.NewStartDeliveryCommand(courier, id)
	require.NoError(f.t, err)
	return commands.NewStartDeliveryCommandHandler(f.deliveries()).Handle(f.t.Context(), cmd)
}

func (f *fixture) complete(id kernel.UUID, courier kernel.Actor, c order.Collection) error {
	cmd, err := commands.NewCompleteDeliveryCommand(courier, id, c, "", nil)
	require.NoError(f.t, err)
	return commands.NewCompleteDeliveryCommandHandler(f.deliveries(), f.policy, f.settings).Handle(f.t.Context(), cmd)
}

func (f *fixture) fail(id kernel.UUID, courier kernel.Actor, reason string) error {
	cmd, err := commands.NewMarkDeliveryFailedCommand(courier, id, reason)
	require.NoError(f.t, err)
	return commands.NewMarkDeliveryFailedCommandHandler(f.deliveries()).Handle(f.t.Context(), cmd)
}

// outForDelivery takes a routed order through packing, assignment and the
// start of delivery with the fixture courier.
func (f *fixture) outForDelivery(id kernel.UUID) {
	f.t.Helper()
	f.pack(id, pointer.To(kernel.NewUUID()))
	require.NoError(f.t, f.assign(id, f.courier))
	require.NoError(f.t, f.accept(id, f.courier))
	require.NoError(f.t, f.startDelivery(id, f.courier))
}

func (f *fixture) declare(actor kernel.Actor, id kernel.UUID, amount *kernel.Money) (cashclosing.Snapshot, error) {
	cmd, err := commands.NewDeclareCashCommand(actor, id, f.courier.UserID(), amount, "")
	require.NoError(f.t, err)
	return commands.NewDeclareCashCommandHandler(f.store, bogota).Handle(f.t.Context(), cmd)
}

func (f *fixture) acceptCash(id kernel.UUID) (commands.AcceptCashResult, error) {
	cmd, err := commands.NewAcceptCashCommand(f.treasury, id)
	require.NoError(f.t, err)
	return commands.NewAcceptCashCommandHandler(f.store, f.policy, bogota).Handle(f.t.Context(), cmd)
}

func (f *fixture) order(id kernel.UUID) order.Snapshot {
	return f.store.order(id)
}

func (f *fixture) trackings(id kernel.UUID) []tracking.Snapshot {
	var out []tracking.Snapshot
	for _, s := range f.store.trackings {
		if s.OrderID.IsEqual(id) {
			out = append(out, s)
		}
	}
	return out
}

func cashCollection(product int64) order.Collection {
	return order.Collection{
		ProductMethod: pointer.To(order.CollectionCash),
		ProductAmount: pointer.To(kernel.MustMoney(product)),
	}
}
