package constants

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull = "vehicle-shipping.super-admin.full-permit"
	PermManagerFull    = "vehicle-shipping.manager.full-permit"
	PermSalesFull      = "vehicle-shipping.sales.full-permit"
	PermOperationsFull = "vehicle-shipping.operations.full-permit"
	PermFinanceFull    = "vehicle-shipping.finance.full-permit"
	PermComplianceFull = "vehicle-shipping.compliance.full-permit"
	PermCustomerFull   = "vehicle-shipping.customer.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	StaffPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
		PermSalesFull,
		PermOperationsFull,
		PermFinanceFull,
		PermComplianceFull,
	}

	QuoteDecisionPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
		PermSalesFull,
	}

	PaymentPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
		PermFinanceFull,
	}

	DocumentReviewPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
		PermComplianceFull,
	}

	ShipmentPermissions = []string{
		PermSuperAdminFull,
		PermManagerFull,
		PermOperationsFull,
	}
)
