package migrate

import (
	"context"

	"github.com/zemenu6/dbrand-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto для gen_random_uuid()
	CreateChecks           bool // CHECK-constraint для целостности
	CreateIndexes          bool // индексы и UNIQUE
	CreateFKsViaSQL        bool // FK через SQL (поверх GORM-constraint)
	CreateUpdatedAtTrigger bool // триггер обновления updated_at
	CreateViews            bool // read-модели active_shoes / available_sizes
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
		CreateViews:            true,
	}
}

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных")

	db = db.WithContext(ctx)

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
			return err
		}
	}

	log.Info("Создание таблиц")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Shoe{},
		&models.ShoeSize{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		log.Error("Не удалось создать таблицы", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_users_updated ON users;
CREATE TRIGGER trg_users_updated BEFORE UPDATE ON users
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_shoes_updated ON shoes;
CREATE TRIGGER trg_shoes_updated BEFORE UPDATE ON shoes
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_payments_updated ON payments;
CREATE TRIGGER trg_payments_updated BEFORE UPDATE ON payments
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("Не удалось создать триггеры updated_at", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Статусы храним TEXT — ограничиваем допустимые значения
		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_status_allowed;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_status_allowed
  CHECK (status IN ('PROCESSING','SHIPPED','DELIVERED','CANCELLED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов заказов", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_status_allowed;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_status_allowed
  CHECK (status IN ('PENDING','PAID','FAILED','REFUNDED'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для статусов платежей", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE users
  DROP CONSTRAINT IF EXISTS chk_users_role_allowed;
ALTER TABLE users
  ADD CONSTRAINT chk_users_role_allowed
  CHECK (role IN ('USER','ADMIN'));
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для ролей", zap.Error(err))
			return err
		}

		// Количество > 0, цены и остатки неотрицательные.
		// Уникальности по (order_id, shoe_id, size) нет: заказ может содержать
		// несколько строк с одной и той же моделью и размером.
		if err := db.Exec(`
DROP INDEX IF EXISTS ux_order_items_order_shoe_size;

ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_quantity_gt_zero
  CHECK (quantity > 0);

ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_unit_price_non_negative;
ALTER TABLE order_items
  ADD CONSTRAINT chk_order_items_unit_price_non_negative
  CHECK (unit_price >= 0);

ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS chk_orders_total_price_non_negative;
ALTER TABLE orders
  ADD CONSTRAINT chk_orders_total_price_non_negative
  CHECK (total_price >= 0);

ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS chk_payments_amount_non_negative;
ALTER TABLE payments
  ADD CONSTRAINT chk_payments_amount_non_negative
  CHECK (amount >= 0);

ALTER TABLE shoe_sizes
  DROP CONSTRAINT IF EXISTS chk_shoe_sizes_stock_non_negative;
ALTER TABLE shoe_sizes
  ADD CONSTRAINT chk_shoe_sizes_stock_non_negative
  CHECK (stock_count >= 0);
`).Error; err != nil {
			log.Error("Не удалось создать CHECK для количеств и цен", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		log.Info("Создание индексов")

		// email уникален без учёта регистра
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower
ON users (lower(email));
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс по email", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_shoe_sizes_shoe_size
ON shoe_sizes (shoe_id, size);
`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс shoe_sizes", zap.Error(err))
			return err
		}

		// Заказы пользователя по дате
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_user_order_date
ON orders (user_id, order_date DESC);
`).Error; err != nil {
			log.Error("Не удалось создать индекс ix_orders_user_order_date", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		if err := db.Exec(`
ALTER TABLE shoe_sizes
  DROP CONSTRAINT IF EXISTS fk_shoe_sizes_shoe,
  ADD CONSTRAINT fk_shoe_sizes_shoe
    FOREIGN KEY (shoe_id) REFERENCES shoes(id) ON DELETE CASCADE;

ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;

ALTER TABLE payments
  DROP CONSTRAINT IF EXISTS fk_payments_order,
  ADD CONSTRAINT fk_payments_order
    FOREIGN KEY (order_id) REFERENCES orders(id);
`).Error; err != nil {
			log.Error("Не удалось создать внешние ключи", zap.Error(err))
			return err
		}
	}

	if opt.CreateViews {
		log.Info("Создание read-моделей")

		// Витрина каталога: только активные и не удалённые товары
		if err := db.Exec(`
CREATE OR REPLACE VIEW active_shoes AS
SELECT id, name, brand, description, price, image_url AS primary_image_url,
       created_at, updated_at
FROM shoes
WHERE is_active = true AND is_deleted = false;
`).Error; err != nil {
			log.Error("Не удалось создать view active_shoes", zap.Error(err))
			return err
		}

		// Доступные размеры: только позиции с остатком
		if err := db.Exec(`
CREATE OR REPLACE VIEW available_sizes AS
SELECT shoe_id, size, stock_count
FROM shoe_sizes
WHERE stock_count > 0;
`).Error; err != nil {
			log.Error("Не удалось создать view available_sizes", zap.Error(err))
			return err
		}
	}

	log.Info("Миграция базы данных успешно завершена")
	return nil
}
