// Package partner contains the DeliveryPartner aggregate: identity and
// contact details, the registered vehicle, the rolling rating, earnings
// balances and presence state. Partners are created via NewDeliveryPartner
// and rehydrated via RestoreDeliveryPartner.
package partner
