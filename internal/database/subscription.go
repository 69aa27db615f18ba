package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/wavesplatform/push-notifications/internal/apperr"
	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/topic"
)

// SubscriptionRow is a Subscription as read back from storage, with the
// generated uid attached (crates/database/src/subscription.rs Subscription).
type SubscriptionRow struct {
	UID        int
	Subscriber model.Address
	Mode       model.SubscriptionMode
	Topic      model.Topic
}

// SubscriptionRequest is one subscribe() input: the topic and mode to apply.
type SubscriptionRequest struct {
	Topic model.Topic
	Mode  model.SubscriptionMode
}

// SubscribeConfig bounds how many subscriptions a single address may hold.
type SubscribeConfig struct {
	MaxSubscriptionsPerAddressPerPair uint32
	MaxSubscriptionsPerAddressTotal   uint32
}

// SubscriptionRepo matches events against stored subscriptions and manages
// the subscribe/unsubscribe lifecycle (crates/database/src/subscription.rs).
type SubscriptionRepo struct{}

// Matching returns every subscription that event satisfies.
func (r SubscriptionRepo) Matching(ctx context.Context, q Querier, event model.Event) ([]SubscriptionRow, error) {
	switch event.Kind {
	case model.EventOrderExecuted:
		return r.matchingOrderSubscriptions(ctx, q, event.Address)
	case model.EventPriceChanged:
		return r.matchingPriceSubscriptions(ctx, q, event.AssetPair, event.PriceRange)
	default:
		return nil, apperr.NewFatal("match subscriptions", fmt.Errorf("unknown event kind %v", event.Kind))
	}
}

func (SubscriptionRepo) matchingOrderSubscriptions(ctx context.Context, q Querier, address model.Address) ([]SubscriptionRow, error) {
	rows, err := q.Query(ctx,
		`SELECT s.uid, s.topic_type
		 FROM topics_order_execution o
		 JOIN subscriptions s ON o.subscription_uid = s.uid
		 WHERE s.subscriber_address = $1
		 ORDER BY s.uid`,
		address.AsBase58String(),
	)
	if err != nil {
		return nil, wrapQueryErr("match order subscriptions", err)
	}
	defer rows.Close()

	var out []SubscriptionRow
	for rows.Next() {
		var uid, topicType int
		if err := rows.Scan(&uid, &topicType); err != nil {
			return nil, wrapQueryErr("scan order subscription", err)
		}
		mode, ok := model.SubscriptionModeFromInt(topicType)
		if !ok {
			return nil, badTopicType(topicType)
		}
		out = append(out, SubscriptionRow{
			UID:        uid,
			Subscriber: address,
			Mode:       mode,
			Topic:      model.OrderFulfilledTopic(),
		})
	}
	return out, wrapQueryErr("match order subscriptions", rows.Err())
}

func (SubscriptionRepo) matchingPriceSubscriptions(ctx context.Context, q Querier, pair model.AssetPair, priceRange model.PriceRange) ([]SubscriptionRow, error) {
	low, high, ok := priceRange.LowHigh()
	if !ok {
		return nil, nil
	}

	rows, err := q.Query(ctx,
		`SELECT s.uid, s.subscriber_address, s.topic_type, p.price_threshold
		 FROM topics_price_threshold p
		 JOIN subscriptions s ON p.subscription_uid = s.uid
		 WHERE p.amount_asset_id = $1 AND p.price_asset_id = $2
		   AND p.price_threshold BETWEEN $3 AND $4
		 ORDER BY s.uid`,
		pair.AmountAsset.ID(), pair.PriceAsset.ID(), low, high,
	)
	if err != nil {
		return nil, wrapQueryErr("match price subscriptions", err)
	}
	defer rows.Close()

	var out []SubscriptionRow
	for rows.Next() {
		var uid, topicType int
		var addr string
		var threshold float64
		if err := rows.Scan(&uid, &addr, &topicType, &threshold); err != nil {
			return nil, wrapQueryErr("scan price subscription", err)
		}
		// BETWEEN is a coarse pre-filter; the half-open bound rule is only
		// correctly expressed by PriceRange.Contains.
		if !priceRange.Contains(threshold) {
			continue
		}
		mode, ok := model.SubscriptionModeFromInt(topicType)
		if !ok {
			return nil, badTopicType(topicType)
		}
		out = append(out, SubscriptionRow{
			UID:        uid,
			Subscriber: model.NewAddress(addr),
			Mode:       mode,
			Topic:      model.PriceThresholdTopic(pair.AmountAsset, pair.PriceAsset, threshold),
		})
	}
	return out, wrapQueryErr("match price subscriptions", rows.Err())
}

// CompleteOneshot deletes a matched subscription in ModeOnce.
func (SubscriptionRepo) CompleteOneshot(ctx context.Context, tx pgx.Tx, sub SubscriptionRow) error {
	tag, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE uid = $1`, sub.UID)
	if err != nil {
		return wrapQueryErr("complete oneshot subscription", err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.NewFatal("complete oneshot subscription",
			fmt.Errorf("expected to delete 1 row for subscription %d, deleted %d", sub.UID, tag.RowsAffected()))
	}
	return nil
}

// Subscribe applies subscriptions for address: ignoring ones that already
// exist with the same mode, updating the mode of ones that exist with a
// different mode, and inserting the rest - after checking the subscription
// limits: the total limit counts existing plus requested subscriptions (a
// request repeating an existing topic counts twice), and the per-pair limit
// counts distinct thresholds across existing and requested ones.
func (r SubscriptionRepo) Subscribe(ctx context.Context, tx pgx.Tx, address model.Address, requests []SubscriptionRequest, cfg SubscribeConfig) error {
	existing, err := r.subscriptions(ctx, tx, address)
	if err != nil {
		return err
	}

	if err := checkLimits(address, existing, requests, cfg); err != nil {
		return err
	}

	byTopic := make(map[model.TopicKey]subscriptionIDMode, len(existing))
	for _, s := range existing {
		byTopic[s.Topic.Key()] = subscriptionIDMode{uid: s.UID, mode: s.Mode}
	}

	var toUpdate []struct {
		uid  int
		mode model.SubscriptionMode
	}
	var toAdd []SubscriptionRequest
	for _, req := range requests {
		if cur, ok := byTopic[req.Topic.Key()]; ok {
			if cur.mode != req.Mode {
				toUpdate = append(toUpdate, struct {
					uid  int
					mode model.SubscriptionMode
				}{cur.uid, req.Mode})
			}
			continue
		}
		toAdd = append(toAdd, req)
	}

	for _, u := range toUpdate {
		if _, err := tx.Exec(ctx,
			`UPDATE subscriptions SET topic_type = $1 WHERE uid = $2`,
			u.mode.ToInt(), u.uid,
		); err != nil {
			return wrapQueryErr("update subscription mode", err)
		}
	}

	if len(toAdd) > 0 {
		if err := r.insertSubscriptions(ctx, tx, address, toAdd); err != nil {
			return err
		}
	}

	return nil
}

type subscriptionIDMode struct {
	uid  int
	mode model.SubscriptionMode
}

func checkLimits(address model.Address, existing []SubscriptionRow, requests []SubscriptionRequest, cfg SubscribeConfig) error {
	totalAfter := len(existing) + len(requests)
	if uint32(totalAfter) > cfg.MaxSubscriptionsPerAddressTotal {
		return apperr.NewLimitExceeded(address.AsBase58String(), int(cfg.MaxSubscriptionsPerAddressTotal))
	}

	perPair := make(map[model.AssetPair]map[uint64]struct{}, totalAfter)
	addThreshold := func(t model.Topic) {
		if t.Kind != model.TopicPriceThreshold {
			return
		}
		pair := model.AssetPair{AmountAsset: t.AmountAsset, PriceAsset: t.PriceAsset}
		set, ok := perPair[pair]
		if !ok {
			set = make(map[uint64]struct{})
			perPair[pair] = set
		}
		set[t.Key().ThresholdBits] = struct{}{}
	}
	for _, s := range existing {
		addThreshold(s.Topic)
	}
	for _, req := range requests {
		addThreshold(req.Topic)
	}

	for _, set := range perPair {
		if uint32(len(set)) > cfg.MaxSubscriptionsPerAddressPerPair {
			return apperr.NewLimitExceeded(address.AsBase58String(), int(cfg.MaxSubscriptionsPerAddressPerPair))
		}
	}
	return nil
}

func (SubscriptionRepo) insertSubscriptions(ctx context.Context, tx pgx.Tx, address model.Address, requests []SubscriptionRequest) error {
	addr := address.AsBase58String()
	if err := ensureSubscriber(ctx, tx, addr); err != nil {
		return err
	}

	uids := make([]int, 0, len(requests))
	for _, req := range requests {
		var uid int
		err := tx.QueryRow(ctx,
			`INSERT INTO subscriptions (subscriber_address, topic, topic_type) VALUES ($1, $2, $3) RETURNING uid`,
			addr, topic.Build(req.Topic, req.Mode), req.Mode.ToInt(),
		).Scan(&uid)
		if err != nil {
			return wrapQueryErr("insert subscription", err)
		}
		uids = append(uids, uid)
	}

	for i, req := range requests {
		uid := uids[i]
		switch req.Topic.Kind {
		case model.TopicOrderFulfilled:
			if _, err := tx.Exec(ctx,
				`INSERT INTO topics_order_execution (subscription_uid) VALUES ($1)`, uid,
			); err != nil {
				return wrapQueryErr("insert order subscription topic", err)
			}
		case model.TopicPriceThreshold:
			if _, err := tx.Exec(ctx,
				`INSERT INTO topics_price_threshold (subscription_uid, amount_asset_id, price_asset_id, price_threshold)
				 VALUES ($1, $2, $3, $4)`,
				uid, req.Topic.AmountAsset.ID(), req.Topic.PriceAsset.ID(), req.Topic.PriceThreshold,
			); err != nil {
				return wrapQueryErr("insert price threshold topic", err)
			}
		}
	}
	return nil
}

// Unsubscribe removes the subscriptions of address that match any of topics.
func (SubscriptionRepo) Unsubscribe(ctx context.Context, tx pgx.Tx, address model.Address, topics []model.Topic) error {
	if len(topics) == 0 {
		return nil
	}
	addr := address.AsBase58String()

	conditions := make([]string, 0, len(topics))
	args := []any{addr}
	for _, t := range topics {
		switch t.Kind {
		case model.TopicOrderFulfilled:
			conditions = append(conditions, "o.subscription_uid IS NOT NULL")
		case model.TopicPriceThreshold:
			n := len(args)
			args = append(args, t.AmountAsset.ID(), t.PriceAsset.ID(), t.PriceThreshold)
			conditions = append(conditions, fmt.Sprintf(
				"(p.amount_asset_id = $%d AND p.price_asset_id = $%d AND p.price_threshold = $%d)",
				n+1, n+2, n+3,
			))
		}
	}

	query := fmt.Sprintf(`
		DELETE FROM subscriptions WHERE uid IN (
			SELECT s.uid
			FROM subscriptions s
				LEFT JOIN topics_price_threshold p ON p.subscription_uid = s.uid
				LEFT JOIN topics_order_execution o ON o.subscription_uid = s.uid
			WHERE s.subscriber_address = $1 AND (%s)
		)`, strings.Join(conditions, " OR "))

	_, err := tx.Exec(ctx, query, args...)
	return wrapQueryErr("unsubscribe", err)
}

// UnsubscribeAll removes every subscription held by address.
func (SubscriptionRepo) UnsubscribeAll(ctx context.Context, tx pgx.Tx, address model.Address) error {
	_, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE subscriber_address = $1`, address.AsBase58String())
	return wrapQueryErr("unsubscribe all", err)
}

// SubscriptionsByAddress lists every (topic, mode) pair held by address.
func (r SubscriptionRepo) SubscriptionsByAddress(ctx context.Context, q Querier, address model.Address) ([]SubscriptionRequest, error) {
	rows, err := r.subscriptions(ctx, q, address)
	if err != nil {
		return nil, err
	}
	out := make([]SubscriptionRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, SubscriptionRequest{Topic: row.Topic, Mode: row.Mode})
	}
	return out, nil
}

func (SubscriptionRepo) subscriptions(ctx context.Context, q Querier, address model.Address) ([]SubscriptionRow, error) {
	rows, err := q.Query(ctx,
		`SELECT s.uid, s.topic_type,
		        o.subscription_uid IS NOT NULL AS is_order,
		        p.amount_asset_id, p.price_asset_id, p.price_threshold
		 FROM subscriptions s
		 LEFT JOIN topics_order_execution o ON o.subscription_uid = s.uid
		 LEFT JOIN topics_price_threshold p ON p.subscription_uid = s.uid
		 WHERE s.subscriber_address = $1
		 ORDER BY s.uid`,
		address.AsBase58String(),
	)
	if err != nil {
		return nil, wrapQueryErr("list subscriptions", err)
	}
	defer rows.Close()

	var out []SubscriptionRow
	for rows.Next() {
		var uid, topicType int
		var isOrder bool
		var amountAssetID, priceAssetID *string
		var threshold *float64
		if err := rows.Scan(&uid, &topicType, &isOrder, &amountAssetID, &priceAssetID, &threshold); err != nil {
			return nil, wrapQueryErr("scan subscription", err)
		}

		mode, ok := model.SubscriptionModeFromInt(topicType)
		if !ok {
			return nil, badTopicType(topicType)
		}

		var topic model.Topic
		switch {
		case isOrder:
			topic = model.OrderFulfilledTopic()
		case amountAssetID != nil && priceAssetID != nil && threshold != nil:
			topic = model.PriceThresholdTopic(model.AssetFromID(*amountAssetID), model.AssetFromID(*priceAssetID), *threshold)
		default:
			// Neither child table has a row: a malformed subscription left
			// over from a bug. Skip it, as the original does (log + ignore).
			continue
		}

		out = append(out, SubscriptionRow{
			UID:        uid,
			Subscriber: address,
			Mode:       mode,
			Topic:      topic,
		})
	}
	return out, wrapQueryErr("list subscriptions", rows.Err())
}

// UIDString renders a subscription's uid the way model.Subscription.UID
// stores it.
func UIDString(uid int) string { return strconv.Itoa(uid) }
