package jobs

import (
	"log"

	config "github.com/oggotrip/oggo-backend/configs"
	"github.com/oggotrip/oggo-backend/services"
)

// SyncDuffelOrders mirrors Duffel orders into the local store on a
// schedule. The rebuild is destructive, so the job only runs when the
// deployment opts in.
func SyncDuffelOrders() {
	if config.Config("DUFFEL_AUTO_SYNC") != "true" {
		return
	}

	log.Println("Running job: SyncDuffelOrders...")

	client := services.NewDuffelClient(config.LoadDuffelConfig())
	result, err := services.NewDuffelSyncService(client).SyncOrders(nil, 50, "")
	if err != nil {
		log.Printf("🔥 Scheduled Duffel sync failed: %v", err)
		return
	}

	log.Printf("✅ Scheduled Duffel sync: %d fetched, %d bookings rebuilt", result.TotalFetched, result.BookingsCreated)
}
