package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chis/chis/internal/config"
	"github.com/chis/chis/internal/domain/admin"
	"github.com/chis/chis/internal/domain/supply"
	"github.com/chis/chis/internal/platform/db"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a demo administrative hierarchy and commodity catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			adminSvc := admin.NewService(
				admin.NewCountyRepoPG(pool),
				admin.NewSubCountyRepoPG(pool),
				admin.NewWardRepoPG(pool),
				admin.NewFacilityRepoPG(pool),
				admin.NewCommunityUnitRepoPG(pool),
			)
			supplySvc := supply.NewService(
				supply.NewCommodityRepoPG(pool),
				supply.NewStockRepoPG(pool),
				supply.NewTransactionRepoPG(pool),
			)

			if err := seedHierarchy(ctx, adminSvc); err != nil {
				return err
			}
			if err := seedCommodities(ctx, supplySvc); err != nil {
				return err
			}

			fmt.Println("Seed data loaded.")
			return nil
		},
	}
}

// seedHierarchy loads one county with a subcounty, ward, facility and
// community unit. Nodes already present by code are reused, so the command
// can be run repeatedly.
func seedHierarchy(ctx context.Context, svc *admin.Service) error {
	county, err := svc.GetCountyByCode(ctx, "DC-01")
	if err != nil {
		pop := 250000
		county = &admin.County{Name: "Demo County", Code: "DC-01", Population: &pop}
		if err := svc.CreateCounty(ctx, county); err != nil {
			return fmt.Errorf("seed county: %w", err)
		}
	}

	sc, err := svc.GetSubCountyByCode(ctx, "DC-01-01")
	if err != nil {
		sc = &admin.SubCounty{CountyID: county.ID, Name: "Central", Code: "DC-01-01"}
		if err := svc.CreateSubCounty(ctx, sc); err != nil {
			return fmt.Errorf("seed subcounty: %w", err)
		}
	}

	ward, err := svc.GetWardByCode(ctx, "DC-01-01-01")
	if err != nil {
		ward = &admin.Ward{SubCountyID: sc.ID, Name: "Township", Code: "DC-01-01-01"}
		if err := svc.CreateWard(ctx, ward); err != nil {
			return fmt.Errorf("seed ward: %w", err)
		}
	}

	facility, err := svc.GetFacilityByCode(ctx, "FAC-0001")
	if err != nil {
		beds := 24
		facility = &admin.Facility{
			Name:          "Township Health Centre",
			FacilityCode:  "FAC-0001",
			FacilityType:  "HEALTH_CENTRE",
			WardID:        ward.ID,
			IsOperational: true,
			BedCapacity:   &beds,
		}
		if err := svc.CreateFacility(ctx, facility); err != nil {
			return fmt.Errorf("seed facility: %w", err)
		}
	}

	if _, err := svc.GetCommunityUnitByCode(ctx, "CU-0001"); err != nil {
		households := 1000
		cu := &admin.CommunityUnit{
			Name:             "Township Community Unit",
			Code:             "CU-0001",
			WardID:           ward.ID,
			LinkedFacilityID: &facility.ID,
			TargetPopulation: 5000,
			TargetHouseholds: &households,
		}
		if err := svc.CreateCommunityUnit(ctx, cu); err != nil {
			return fmt.Errorf("seed community unit: %w", err)
		}
	}

	return nil
}

func seedCommodities(ctx context.Context, svc *supply.Service) error {
	catalog := []*supply.Commodity{
		{Name: "BCG vaccine", Code: "VAX-BCG", CommodityType: "VACCINE", Unit: "dose", ReorderLevel: 100},
		{Name: "Amoxicillin 250mg", Code: "MED-AMOX-250", CommodityType: "MEDICINE", Unit: "tablet", ReorderLevel: 500},
		{Name: "Iron and folic acid supplement", Code: "MED-IFAS", CommodityType: "MEDICINE", Unit: "tablet", ReorderLevel: 1000},
		{Name: "Examination gloves", Code: "SUP-GLOVES", CommodityType: "SUPPLY", Unit: "pair", ReorderLevel: 200},
		{Name: "Malaria RDT kit", Code: "RGT-MRDT", CommodityType: "REAGENT", Unit: "kit", ReorderLevel: 50},
	}
	for _, c := range catalog {
		if _, err := svc.GetCommodityByCode(ctx, c.Code); err == nil {
			continue
		}
		if err := svc.CreateCommodity(ctx, c); err != nil {
			return fmt.Errorf("seed commodity %s: %w", c.Code, err)
		}
	}
	return nil
}
