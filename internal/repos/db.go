package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the catalog if the DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories (sidebar taxonomy)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  icon TEXT,
  subcategories_json TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Sarees
CREATE TABLE IF NOT EXISTS sarees(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  subcategory TEXT,
  price INTEGER NOT NULL CHECK (price >= 0),
  original_price INTEGER NOT NULL CHECK (original_price >= price),
  occasion TEXT NOT NULL,
  fabric TEXT NOT NULL,
  colors_json TEXT,
  rating REAL NOT NULL DEFAULT 0 CHECK (rating >= 0 AND rating <= 5),
  reviews INTEGER NOT NULL DEFAULT 0 CHECK (reviews >= 0),
  date_added TEXT NOT NULL,
  is_new INTEGER NOT NULL DEFAULT 0,
  is_best_seller INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sarees_category   ON sarees(category);
CREATE INDEX IF NOT EXISTS idx_sarees_date_added ON sarees(date_added);

-- Single-slot key-value store (persisted auth session lives here)
CREATE TABLE IF NOT EXISTS kv(
  k TEXT PRIMARY KEY,
  v TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting boutique categories and sarees")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO categories(id,name,icon,subcategories_json) VALUES
	  ('silk','Silk Sarees','🌟','["Kanchipuram","Banarasi","Mysore","Tussar"]'),
	  ('cotton','Cotton Sarees','🌿','["Khadi","Tant","Chettinad","Mangalgiri"]'),
	  ('designer','Designer Sarees','💎','["Contemporary","Fusion","Indo-Western"]'),
	  ('wedding','Wedding Collection','💒','["Bridal","Reception","Sangeet"]'),
	  ('casual','Casual Wear','🌸','["Daily Wear","Office Wear","Party Wear"]'),
	  ('handloom','Handloom Sarees','🧵','["Pochampally","Chanderi","Paithani","Sambalpuri"]'),
	  ('printed','Printed Sarees','🎨','["Kalamkari","Block Print","Digital Print","Batik"]')`)

	tx.MustExec(`INSERT INTO sarees(id,name,category,subcategory,price,original_price,occasion,fabric,colors_json,rating,reviews,date_added,is_new,is_best_seller,image) VALUES
	  ('sr-001','Kanchipuram Bridal Grandeur','silk','Kanchipuram',28500,32000,'Wedding','Pure Silk','["Maroon","Gold"]',4.9,214,'2024-01-12T00:00:00Z',0,1,'sarees/sr-001/main.jpg'),
	  ('sr-002','Banarasi Zari Heirloom','silk','Banarasi',18200,21000,'Wedding','Banarasi Silk','["Red","Gold"]',4.8,187,'2024-02-03T00:00:00Z',0,1,'sarees/sr-002/main.jpg'),
	  ('sr-003','Mysore Crepe Whisper','silk','Mysore',6400,7500,'Festival','Crepe','["Teal","Silver"]',4.5,96,'2024-03-18T00:00:00Z',0,0,'sarees/sr-003/main.jpg'),
	  ('sr-004','Tant Summer Breeze','cotton','Tant',2100,2600,'Daily','Cotton','["White","Red"]',4.2,58,'2024-04-02T00:00:00Z',0,0,'sarees/sr-004/main.jpg'),
	  ('sr-005','Khadi Earth Weave','cotton','Khadi',2950,3400,'Work','Cotton','["Beige","Brown"]',4.4,73,'2024-05-21T00:00:00Z',1,0,'sarees/sr-005/main.jpg'),
	  ('sr-006','Contemporary Sequin Drape','designer','Contemporary',12500,15000,'Party','Georgette','["Black","Rose Gold"]',4.6,121,'2024-06-10T00:00:00Z',1,0,'sarees/sr-006/main.jpg'),
	  ('sr-007','Indo-Western Net Fantasy','designer','Indo-Western',9800,11500,'Reception','Net','["Wine","Silver"]',4.3,64,'2024-06-28T00:00:00Z',1,0,'sarees/sr-007/main.jpg'),
	  ('sr-008','Bridal Velvet Royale','wedding','Bridal',34000,38000,'Wedding','Velvet','["Deep Red","Gold"]',4.9,243,'2023-11-07T00:00:00Z',0,1,'sarees/sr-008/main.jpg'),
	  ('sr-009','Sangeet Shimmer','wedding','Sangeet',8600,9900,'Party','Georgette','["Peach","Gold"]',4.4,88,'2024-07-15T00:00:00Z',1,0,'sarees/sr-009/main.jpg'),
	  ('sr-010','Daily Wear Pastel Ease','casual','Daily Wear',1800,2200,'Daily','Cotton','["Lavender"]',4.1,41,'2024-08-01T00:00:00Z',1,0,'sarees/sr-010/main.jpg'),
	  ('sr-011','Office Wear Crepe Line','casual','Office Wear',3200,3800,'Work','Crepe','["Grey","Blue"]',4.0,37,'2024-05-05T00:00:00Z',0,0,'sarees/sr-011/main.jpg'),
	  ('sr-012','Chanderi Moonlight','handloom','Chanderi',5200,6100,'Festival','Pure Silk','["Ivory","Gold"]',4.7,132,'2024-02-26T00:00:00Z',0,1,'sarees/sr-012/main.jpg'),
	  ('sr-013','Pochampally Ikat Story','handloom','Pochampally',4700,5400,'Casual','Cotton','["Indigo","White"]',4.5,79,'2024-03-30T00:00:00Z',0,0,'sarees/sr-013/main.jpg'),
	  ('sr-014','Kalamkari Mythic Canvas','printed','Kalamkari',3000,3600,'Casual','Cotton','["Mustard","Black"]',4.3,66,'2024-04-19T00:00:00Z',0,0,'sarees/sr-014/main.jpg'),
	  ('sr-015','Batik Dusk Print','printed','Batik',2600,3100,'Daily','Crepe','["Rust","Cream"]',4.2,52,'2024-07-22T00:00:00Z',1,0,'sarees/sr-015/main.jpg'),
	  ('sr-016','Paithani Peacock Border','handloom','Paithani',16800,19500,'Festival','Pure Silk','["Purple","Green","Gold"]',4.8,158,'2023-12-14T00:00:00Z',0,1,'sarees/sr-016/main.jpg')`)

	return tx.Commit()
}
