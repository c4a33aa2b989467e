package sqlstore

// -----------------------------------------------------------------------------
// SCHEMA (per dialect)
// -----------------------------------------------------------------------------

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS hotels (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  name        TEXT NOT NULL,
  description TEXT NOT NULL,
  address     TEXT NOT NULL,
  city        TEXT NOT NULL,
  country     TEXT NOT NULL,
  star_rating INTEGER NOT NULL,
  has_pool    INTEGER NOT NULL DEFAULT 0,
  image_url   TEXT
)`, `
CREATE TABLE IF NOT EXISTS rooms (
  id                    INTEGER PRIMARY KEY AUTOINCREMENT,
  hotel_id              INTEGER NOT NULL REFERENCES hotels(id),
  name                  TEXT NOT NULL,
  description           TEXT NOT NULL,
  room_type             TEXT NOT NULL,
  price_per_night_cents INTEGER NOT NULL CHECK (price_per_night_cents >= 0),
  max_guests            INTEGER NOT NULL CHECK (max_guests >= 0),
  image_url             TEXT
)`, `
CREATE TABLE IF NOT EXISTS bookings (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  room_id     INTEGER NOT NULL REFERENCES rooms(id),
  guest_name  TEXT NOT NULL,
  guest_email TEXT NOT NULL,
  check_in    TEXT NOT NULL,
  check_out   TEXT NOT NULL,
  guests      INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
}

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS hotels (
  id          BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  name        VARCHAR(255) NOT NULL,
  description TEXT NOT NULL,
  address     VARCHAR(255) NOT NULL,
  city        VARCHAR(128) NOT NULL,
  country     VARCHAR(128) NOT NULL,
  star_rating INT NOT NULL,
  has_pool    TINYINT(1) NOT NULL DEFAULT 0,
  image_url   VARCHAR(1024) NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, `
CREATE TABLE IF NOT EXISTS rooms (
  id                    BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  hotel_id              BIGINT NOT NULL,
  name                  VARCHAR(255) NOT NULL,
  description           TEXT NOT NULL,
  room_type             VARCHAR(64) NOT NULL,
  price_per_night_cents BIGINT UNSIGNED NOT NULL,
  max_guests            INT UNSIGNED NOT NULL,
  image_url             VARCHAR(1024) NULL,
  KEY idx_rooms_hotel_price (hotel_id, price_per_night_cents),
  CONSTRAINT fk_rooms_hotel FOREIGN KEY (hotel_id) REFERENCES hotels(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, `
CREATE TABLE IF NOT EXISTS bookings (
  id          BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  room_id     BIGINT NOT NULL,
  guest_name  VARCHAR(255) NOT NULL,
  guest_email VARCHAR(255) NOT NULL,
  check_in    CHAR(10) NOT NULL,
  check_out   CHAR(10) NOT NULL,
  guests      INT NOT NULL,
  total_cents BIGINT NOT NULL,
  created_at  CHAR(19) NOT NULL,
  CONSTRAINT fk_bookings_room FOREIGN KEY (room_id) REFERENCES rooms(id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Additive evolution for stores created before has_pool existed. Failure
// (column already present) is expected and ignored.
var sqliteMigrations = []string{
	`ALTER TABLE hotels ADD COLUMN has_pool INTEGER NOT NULL DEFAULT 0`,
}

var mysqlMigrations = []string{
	`ALTER TABLE hotels ADD COLUMN has_pool TINYINT(1) NOT NULL DEFAULT 0`,
}

// -----------------------------------------------------------------------------
// WRITE QUERIES
// -----------------------------------------------------------------------------

const insertHotelSQL = `
INSERT INTO hotels
  (name, description, address, city, country, star_rating, has_pool, image_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const insertRoomSQL = `
INSERT INTO rooms
  (hotel_id, name, description, room_type, price_per_night_cents, max_guests, image_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

const insertBookingSQL = `
INSERT INTO bookings
  (room_id, guest_name, guest_email, check_in, check_out, guests, total_cents, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const hotelColumns = `id, name, description, address, city, country, star_rating, has_pool, image_url`

const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY name`

const listHotelsByPoolSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE has_pool = ? ORDER BY name`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`

const countHotelsSQL = `SELECT COUNT(*) FROM hotels`

// Name and city match case-insensitively on both dialects.
const findHotelIDSQL = `
SELECT id FROM hotels
WHERE LOWER(name) = LOWER(?) AND LOWER(city) = LOWER(?)
ORDER BY id
LIMIT 1
`

const listRoomsByHotelSQL = `
SELECT id, hotel_id, name, description, room_type, price_per_night_cents, max_guests, image_url
FROM rooms
WHERE hotel_id = ?
ORDER BY price_per_night_cents, id
`

// Rooms joined with the owning hotel. The unfiltered form is the search
// candidate set; filtering happens in memory (domain.RoomFilter).
const roomWithHotelSelect = `
SELECT
  r.id, r.hotel_id, r.name, r.description, r.room_type,
  r.price_per_night_cents, r.max_guests, r.image_url,
  h.name AS hotel_name, h.city AS hotel_city, h.has_pool AS hotel_has_pool
FROM rooms r
JOIN hotels h ON r.hotel_id = h.id
`

const listRoomsWithHotelSQL = roomWithHotelSelect + `ORDER BY r.price_per_night_cents, r.id`

const getRoomSQL = roomWithHotelSelect + `WHERE r.id = ?`

const getBookingSQL = `
SELECT id, room_id, guest_name, guest_email, check_in, check_out, guests, total_cents, created_at
FROM bookings
WHERE id = ?
`
