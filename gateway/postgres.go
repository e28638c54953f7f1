package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/models"
)

// PostgresGateway implements Gateway on PostgreSQL through gorm. Line items
// of sales and purchases are stored as JSON columns; the rest of the remote
// schema keeps the backend's underscore column names.
type PostgresGateway struct {
	db *gorm.DB
}

func NewPostgresGateway(db *gorm.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// AutoMigrate creates the four remote tables.
func (g *PostgresGateway) AutoMigrate() error {
	return g.db.AutoMigrate(&productRow{}, &userRow{}, &saleRow{}, &purchaseRow{})
}

type productRow struct {
	ID            string  `gorm:"primaryKey;column:id"`
	Code          string  `gorm:"column:code"`
	Name          string  `gorm:"column:name"`
	Brand         string  `gorm:"column:brand"`
	Category      string  `gorm:"column:category"`
	Price         float64 `gorm:"column:price"`
	Cost          float64 `gorm:"column:cost"`
	Stock         int     `gorm:"column:stock"`
	Description   string  `gorm:"column:description"`
	Image         string  `gorm:"column:image"`
	IsSale        bool    `gorm:"column:is_sale"`
	DiscountPrice float64 `gorm:"column:discount_price"`
}

func (productRow) TableName() string { return "products" }

type userRow struct {
	ID          string    `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Password    string    `gorm:"column:password"`
	Role        string    `gorm:"column:role"`
	Permissions []byte    `gorm:"column:permissions;type:jsonb"`
	Wishlist    []byte    `gorm:"column:wishlist;type:jsonb"`
	DocumentID  string    `gorm:"column:dni"`
	Phone       string    `gorm:"column:phone"`
	Address     string    `gorm:"column:address"`
	City        string    `gorm:"column:city"`
	PostalCode  string    `gorm:"column:zip_code"`
	Country     string    `gorm:"column:country"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

type saleRow struct {
	ID            string    `gorm:"primaryKey;column:id"`
	UserID        string    `gorm:"column:user_id"`
	Items         []byte    `gorm:"column:items;type:jsonb"`
	Total         float64   `gorm:"column:total"`
	Date          time.Time `gorm:"column:date"`
	PaymentMethod string    `gorm:"column:payment_method"`
}

func (saleRow) TableName() string { return "sales" }

type purchaseRow struct {
	ID       string    `gorm:"primaryKey;column:id"`
	Supplier string    `gorm:"column:supplier"`
	Date     time.Time `gorm:"column:date"`
	Total    float64   `gorm:"column:total"`
	Items    []byte    `gorm:"column:items;type:jsonb"`
}

func (purchaseRow) TableName() string { return "purchases" }

func (g *PostgresGateway) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, models.Product{
			ID: r.ID, Code: r.Code, Name: r.Name, Brand: r.Brand,
			Category: r.Category, Price: r.Price, Cost: r.Cost, Stock: r.Stock,
			Description: r.Description, Image: r.Image,
			IsSale: r.IsSale, DiscountPrice: r.DiscountPrice,
		})
	}
	return products, nil
}

func (g *PostgresGateway) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row := productRow{
		ID: p.ID, Code: p.Code, Name: p.Name, Brand: p.Brand,
		Category: p.Category, Price: p.Price, Cost: p.Cost, Stock: p.Stock,
		Description: p.Description, Image: p.Image,
		IsSale: p.IsSale, DiscountPrice: p.DiscountPrice,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (g *PostgresGateway) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) error {
	updates := map[string]interface{}{}
	if patch.Code != nil {
		updates["code"] = *patch.Code
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Brand != nil {
		updates["brand"] = *patch.Brand
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Cost != nil {
		updates["cost"] = *patch.Cost
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.IsSale != nil {
		updates["is_sale"] = *patch.IsSale
	}
	if patch.DiscountPrice != nil {
		updates["discount_price"] = *patch.DiscountPrice
	}
	if len(updates) == 0 {
		return nil
	}

	res := g.db.WithContext(ctx).Model(&productRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *PostgresGateway) DeleteProduct(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&productRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *PostgresGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		u := models.User{
			ID: r.ID, Name: r.Name, Email: r.Email, Password: r.Password,
			Role: models.Role(r.Role), DocumentID: r.DocumentID, Phone: r.Phone,
			Address: r.Address, City: r.City, PostalCode: r.PostalCode,
			Country: r.Country, CreatedAt: r.CreatedAt,
		}
		if len(r.Permissions) > 0 {
			if err := json.Unmarshal(r.Permissions, &u.Permissions); err != nil {
				return nil, err
			}
		}
		if len(r.Wishlist) > 0 {
			if err := json.Unmarshal(r.Wishlist, &u.Wishlist); err != nil {
				return nil, err
			}
		}
		users = append(users, u)
	}
	return users, nil
}

func (g *PostgresGateway) InsertUser(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row, err := toUserRow(u)
	if err != nil {
		return models.User{}, err
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.User{}, err
	}
	return u, nil
}

func toUserRow(u models.User) (userRow, error) {
	row := userRow{
		ID: u.ID, Name: u.Name, Email: u.Email, Password: u.Password,
		Role: string(u.Role), DocumentID: u.DocumentID, Phone: u.Phone,
		Address: u.Address, City: u.City, PostalCode: u.PostalCode,
		Country: u.Country, CreatedAt: u.CreatedAt,
	}
	if u.Permissions != nil {
		b, err := json.Marshal(u.Permissions)
		if err != nil {
			return userRow{}, err
		}
		row.Permissions = b
	}
	if u.Wishlist != nil {
		b, err := json.Marshal(u.Wishlist)
		if err != nil {
			return userRow{}, err
		}
		row.Wishlist = b
	}
	return row, nil
}

func (g *PostgresGateway) UpdateUser(ctx context.Context, id string, patch models.UserPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Password != nil {
		updates["password"] = *patch.Password
	}
	if patch.Role != nil {
		updates["role"] = string(*patch.Role)
	}
	if patch.Permissions != nil {
		b, err := json.Marshal(*patch.Permissions)
		if err != nil {
			return err
		}
		updates["permissions"] = b
	}
	if patch.Wishlist != nil {
		b, err := json.Marshal(*patch.Wishlist)
		if err != nil {
			return err
		}
		updates["wishlist"] = b
	}
	if patch.DocumentID != nil {
		updates["dni"] = *patch.DocumentID
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.PostalCode != nil {
		updates["zip_code"] = *patch.PostalCode
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if len(updates) == 0 {
		return nil
	}

	res := g.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *PostgresGateway) DeleteUser(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *PostgresGateway) ListSales(ctx context.Context) ([]models.Sale, error) {
	var rows []saleRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	sales := make([]models.Sale, 0, len(rows))
	for _, r := range rows {
		s := models.Sale{
			ID: r.ID, UserID: r.UserID, Total: r.Total, Date: r.Date,
			PaymentMethod: models.PaymentMethod(r.PaymentMethod),
		}
		if len(r.Items) > 0 {
			if err := json.Unmarshal(r.Items, &s.Items); err != nil {
				return nil, err
			}
		}
		sales = append(sales, s)
	}
	return sales, nil
}

func (g *PostgresGateway) InsertSale(ctx context.Context, s models.Sale) (models.Sale, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	items, err := json.Marshal(s.Items)
	if err != nil {
		return models.Sale{}, err
	}
	row := saleRow{
		ID: s.ID, UserID: s.UserID, Items: items, Total: s.Total,
		Date: s.Date, PaymentMethod: string(s.PaymentMethod),
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Sale{}, err
	}
	return s, nil
}

func (g *PostgresGateway) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	var rows []purchaseRow
	if err := g.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	purchases := make([]models.Purchase, 0, len(rows))
	for _, r := range rows {
		p := models.Purchase{ID: r.ID, Supplier: r.Supplier, Date: r.Date, Total: r.Total}
		if len(r.Items) > 0 {
			if err := json.Unmarshal(r.Items, &p.Items); err != nil {
				return nil, err
			}
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}

func (g *PostgresGateway) InsertPurchase(ctx context.Context, p models.Purchase) (models.Purchase, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	items, err := json.Marshal(p.Items)
	if err != nil {
		return models.Purchase{}, err
	}
	row := purchaseRow{ID: p.ID, Supplier: p.Supplier, Date: p.Date, Total: p.Total, Items: items}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}
