package models

import "time"

// RoRoCosts holds the numeric inputs of the RoRo profit calculation.
// Quantities, buy rates and flat charges are integers; CBM and RATE are floats.
type RoRoCosts struct {
	Small      *int64   `json:"SMALL" bson:"small"`
	BuySmall   *int64   `json:"BUY_SMALL" bson:"buy_small"`
	SSUV       *int64   `json:"S_SUV" bson:"s_suv"`
	BuySSUV    *int64   `json:"BUY_S_SUV" bson:"buy_s_suv"`
	SUV        *int64   `json:"SUV" bson:"suv"`
	BuySUV     *int64   `json:"BUY_SUV" bson:"buy_suv"`
	RVCargo    *int64   `json:"RV_CARGO" bson:"rv_cargo"`
	BuyRVCargo *int64   `json:"BUY_RV_CARGO" bson:"buy_rv_cargo"`
	Special    *int64   `json:"SPECIAL" bson:"special"`
	BuySpecial *int64   `json:"BUY_SPECIAL" bson:"buy_special"`
	CBM        *float64 `json:"CBM" bson:"cbm"`
	BuyCBM     *float64 `json:"BUY_CBM" bson:"buy_cbm"`
	Sell       *int64   `json:"SELL" bson:"sell"`
	HC         *int64   `json:"HC" bson:"hc"`
	WFG        *int64   `json:"WFG" bson:"wfg"`
	Security   *int64   `json:"SECURITY" bson:"security"`
	Carrier    *int64   `json:"CARRIER" bson:"carrier"`
	PartnerFee *int64   `json:"PARTNER_FEE" bson:"partner_fee"`
	Other      *int64   `json:"OTHER" bson:"other"`
	Rate       *float64 `json:"RATE" bson:"rate"`
}

// ProgressRoRo is the shipment-level (master) RoRo line of a progress record.
type ProgressRoRo struct {
	ID          int64    `json:"id" bson:"_id" db:"id"`
	ProgressID  int64    `json:"progress_id" bson:"progress_id" db:"progress_id"`
	CreatorID   *int64   `json:"-" bson:"creator_id" db:"creator_id"`
	BKNo        *string  `json:"BKNo" bson:"bk_no" db:"bk_no"`
	Line        []string `json:"LINE" bson:"line" db:"line"`
	Vessel      []string `json:"VESSEL" bson:"vessel" db:"vessel"`
	Doc         []string `json:"DOC" bson:"doc" db:"doc"`
	Partner     *string  `json:"PARTNER" bson:"partner" db:"partner"`
	ETA         *Date    `json:"ETA" bson:"eta" db:"eta"`
	ETD         *Date    `json:"ETD" bson:"etd" db:"etd"`
	Payment     *string  `json:"PAYMENT" bson:"payment" db:"payment"`
	ATD         *Date    `json:"ATD" bson:"atd" db:"atd"`
	Shipper     *string  `json:"SHIPPER" bson:"shipper" db:"shipper"`
	Destination *string  `json:"DESTINATION" bson:"destination" db:"destination"`

	RoRoCosts `bson:",inline"`

	ProfitUSD float64    `json:"PROFIT_USD" bson:"profit_usd" db:"profit_usd"`
	ProfitKRW float64    `json:"PROFIT_KRW" bson:"profit_krw" db:"profit_krw"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" bson:"updated_at" db:"updated_at"`

	Creator *UserOut             `json:"creator" bson:"-"`
	Details []ProgressRoRoDetail `json:"progress_detail_roro_detail" bson:"-"`
}

// ProgressRoRoDetail is a chassis-level line of a RoRo master.
type ProgressRoRoDetail struct {
	ID        int64   `json:"id" bson:"_id" db:"id"`
	RoRoID    int64   `json:"-" bson:"progress_detail_roro_id" db:"progress_detail_roro_id"`
	Model     *string `json:"MODEL" bson:"model" db:"model"`
	ChassisNo *string `json:"CHASSISNo" bson:"chassis_no" db:"chassis_no"`
	EL        *bool   `json:"EL" bson:"el" db:"el"`
	HBL       *string `json:"HBL" bson:"hbl" db:"hbl"`
}

// ProgressRoRoPayload is the create/patch body. Profit fields are not part of
// it: anything a client sends under PROFIT_USD/PROFIT_KRW is dropped on decode.
type ProgressRoRoPayload struct {
	BKNo        Field[string]   `json:"BKNo"`
	Line        Field[[]string] `json:"LINE"`
	Vessel      Field[[]string] `json:"VESSEL"`
	Doc         Field[[]string] `json:"DOC"`
	Partner     Field[string]   `json:"PARTNER"`
	ETA         Field[Date]     `json:"ETA"`
	ETD         Field[Date]     `json:"ETD"`
	Payment     Field[string]   `json:"PAYMENT"`
	ATD         Field[Date]     `json:"ATD"`
	Shipper     Field[string]   `json:"SHIPPER"`
	Destination Field[string]   `json:"DESTINATION"`

	Small      Field[int64]   `json:"SMALL"`
	BuySmall   Field[int64]   `json:"BUY_SMALL"`
	SSUV       Field[int64]   `json:"S_SUV"`
	BuySSUV    Field[int64]   `json:"BUY_S_SUV"`
	SUV        Field[int64]   `json:"SUV"`
	BuySUV     Field[int64]   `json:"BUY_SUV"`
	RVCargo    Field[int64]   `json:"RV_CARGO"`
	BuyRVCargo Field[int64]   `json:"BUY_RV_CARGO"`
	Special    Field[int64]   `json:"SPECIAL"`
	BuySpecial Field[int64]   `json:"BUY_SPECIAL"`
	CBM        Field[float64] `json:"CBM"`
	BuyCBM     Field[float64] `json:"BUY_CBM"`
	Sell       Field[int64]   `json:"SELL"`
	HC         Field[int64]   `json:"HC"`
	WFG        Field[int64]   `json:"WFG"`
	Security   Field[int64]   `json:"SECURITY"`
	Carrier    Field[int64]   `json:"CARRIER"`
	PartnerFee Field[int64]   `json:"PARTNER_FEE"`
	Other      Field[int64]   `json:"OTHER"`
	Rate       Field[float64] `json:"RATE"`

	Details Field[[]ProgressRoRoDetailPayload] `json:"progress_detail_roro_detail"`
}

// ProgressRoRoDetailPayload is one chassis row of a payload. A nil or zero ID
// means a new row.
type ProgressRoRoDetailPayload struct {
	ID        *int64        `json:"id"`
	Model     Field[string] `json:"MODEL"`
	ChassisNo Field[string] `json:"CHASSISNo"`
	EL        Field[bool]   `json:"EL"`
	HBL       Field[string] `json:"HBL"`
}

// HasID reports whether the row refers to an existing detail.
func (d ProgressRoRoDetailPayload) HasID() bool {
	return d.ID != nil && *d.ID != 0
}

// ApplyTo merges every present field of the payload into r. Details, profit
// and ownership columns are left alone.
func (p *ProgressRoRoPayload) ApplyTo(r *ProgressRoRo) {
	p.BKNo.Apply(&r.BKNo)
	p.Line.ApplyValue(&r.Line)
	p.Vessel.ApplyValue(&r.Vessel)
	p.Doc.ApplyValue(&r.Doc)
	p.Partner.Apply(&r.Partner)
	p.ETA.Apply(&r.ETA)
	p.ETD.Apply(&r.ETD)
	p.Payment.Apply(&r.Payment)
	p.ATD.Apply(&r.ATD)
	p.Shipper.Apply(&r.Shipper)
	p.Destination.Apply(&r.Destination)

	c := &r.RoRoCosts
	p.Small.Apply(&c.Small)
	p.BuySmall.Apply(&c.BuySmall)
	p.SSUV.Apply(&c.SSUV)
	p.BuySSUV.Apply(&c.BuySSUV)
	p.SUV.Apply(&c.SUV)
	p.BuySUV.Apply(&c.BuySUV)
	p.RVCargo.Apply(&c.RVCargo)
	p.BuyRVCargo.Apply(&c.BuyRVCargo)
	p.Special.Apply(&c.Special)
	p.BuySpecial.Apply(&c.BuySpecial)
	p.CBM.Apply(&c.CBM)
	p.BuyCBM.Apply(&c.BuyCBM)
	p.Sell.Apply(&c.Sell)
	p.HC.Apply(&c.HC)
	p.WFG.Apply(&c.WFG)
	p.Security.Apply(&c.Security)
	p.Carrier.Apply(&c.Carrier)
	p.PartnerFee.Apply(&c.PartnerFee)
	p.Other.Apply(&c.Other)
	p.Rate.Apply(&c.Rate)
}

// DetailRows returns the payload detail list, empty when the key was absent or null.
func (p *ProgressRoRoPayload) DetailRows() []ProgressRoRoDetailPayload {
	if !p.Details.Set || !p.Details.Valid {
		return nil
	}
	return p.Details.Value
}

func (d *ProgressRoRoDetailPayload) ApplyTo(row *ProgressRoRoDetail) {
	d.Model.Apply(&row.Model)
	d.ChassisNo.Apply(&row.ChassisNo)
	d.EL.Apply(&row.EL)
	d.HBL.Apply(&row.HBL)
}
